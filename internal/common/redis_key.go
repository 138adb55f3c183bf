package common

import "fmt"

func RedisKeyUser(userID string) string {
	return fmt.Sprintf("cache:user:%s", userID)
}
