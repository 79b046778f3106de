package repository

import (
	"errors"
	"os"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// isConditionalCheckFailed matches both the single-item conditional failure
// and the transactional variant, which DynamoDB reports through the
// cancellation reasons.
func isConditionalCheckFailed(err error) bool {
	var cfe *types.ConditionalCheckFailedException
	if errors.As(err, &cfe) {
		return true
	}
	return transactCancelReasonIndex(err) >= 0
}

// transactCancelReasonIndex returns the index of the first item that failed
// its condition in a cancelled transactional write, or -1 when the error is
// not a conditional cancellation.
func transactCancelReasonIndex(err error) int {
	var tce *types.TransactionCanceledException
	if !errors.As(err, &tce) {
		return -1
	}
	for i, reason := range tce.CancellationReasons {
		if reason.Code != nil && *reason.Code == "ConditionalCheckFailed" {
			return i
		}
	}
	return -1
}
