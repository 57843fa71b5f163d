package http

import (
	"net/http"
	"strconv"
	"time"

	"roomly/pkg/config"
	apperrors "roomly/pkg/errors"
	"roomly/pkg/schedule"
)

func ExtractLimitOffset(r *http.Request) (int, int64, error) {
	query := r.URL.Query()

	limit := 0
	if s := query.Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, apperrors.InvalidInput("invalid limit parameter: " + s)
		}
		limit = v
	}

	var offset int64 = 0
	if s := query.Get("offset"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, apperrors.InvalidInput("invalid offset parameter: " + s)
		}
		offset = int64(v)
	}

	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	return limit, offset, nil
}

// ExtractWindow parses the required start_time/end_time RFC3339 query
// parameters into a validated interval.
func ExtractWindow(r *http.Request) (schedule.Interval, error) {
	query := r.URL.Query()

	start, err := parseRFC3339(query.Get("start_time"), "start_time")
	if err != nil {
		return schedule.Interval{}, err
	}
	end, err := parseRFC3339(query.Get("end_time"), "end_time")
	if err != nil {
		return schedule.Interval{}, err
	}

	window, err := schedule.NewInterval(start, end)
	if err != nil {
		return schedule.Interval{}, apperrors.InvalidInput("start_time must be before end_time")
	}
	return window, nil
}

func parseRFC3339(value, name string) (time.Time, error) {
	if value == "" {
		return time.Time{}, apperrors.InvalidInput("'" + name + "' query parameter is required")
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, apperrors.InvalidInput("invalid " + name + " format, must be RFC3339")
	}
	return parsed, nil
}
