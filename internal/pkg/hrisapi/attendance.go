package hrisapi

import (
	"context"
	"net/url"
	"strconv"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/attendance"
)

// ListMine implements attendance.AttendanceRepository
func (c *Client) ListMine(ctx context.Context, query attendance.ListQuery) (attendance.ListResult, error) {
	var result attendance.ListResult
	err := c.get(ctx, "/api/v1/attendance/my", listValues(query), &result)
	return result, err
}

func (c *Client) List(ctx context.Context, query attendance.ListQuery) (attendance.ListResult, error) {
	var result attendance.ListResult
	err := c.get(ctx, "/api/v1/attendance", listValues(query), &result)
	return result, err
}

func (c *Client) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	var record attendance.Attendance
	err := c.get(ctx, "/api/v1/attendance/"+url.PathEscape(id), nil, &record)
	return record, err
}

func listValues(query attendance.ListQuery) url.Values {
	values := url.Values{}
	if query.EmployeeID != "" {
		values.Set("employee_id", query.EmployeeID)
	}
	if query.StartDate != "" {
		values.Set("start_date", query.StartDate)
	}
	if query.EndDate != "" {
		values.Set("end_date", query.EndDate)
	}
	if query.Page > 0 {
		values.Set("page", strconv.Itoa(query.Page))
	}
	if query.Limit > 0 {
		values.Set("limit", strconv.Itoa(query.Limit))
	}
	values.Set("sort_by", "date")
	values.Set("sort_order", "desc")
	return values
}
