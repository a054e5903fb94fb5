package server

import (
	"strconv"
	"strings"

	reportingdomain "github.com/legaldesk/analytics/internal/reporting/domain"
)

// parseTopN resolves the top_n query value, falling back to the configured
// default when absent. Values that do not parse as a positive integer are
// rejected here so the service only ever sees a concrete n.
func parseTopN(value string, def int) (int, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return def, nil
	}
	parsed, err := strconv.Atoi(trimmed)
	if err != nil || parsed < 1 {
		return 0, reportingdomain.ErrInvalidTopN
	}
	return parsed, nil
}

func parseBucket(value string) (reportingdomain.Bucket, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return reportingdomain.BucketWeek, nil
	}
	return reportingdomain.ParseBucket(trimmed)
}
