package hrisapi

import (
	"context"
	"net/url"
)

type Employee struct {
	ID           string  `json:"id"`
	FullName     string  `json:"full_name"`
	EmployeeCode string  `json:"employee_code"`
	PositionName *string `json:"position_name,omitempty"`
}

func (c *Client) GetEmployee(ctx context.Context, id string) (Employee, error) {
	var employee Employee
	err := c.get(ctx, "/api/v1/employees/"+url.PathEscape(id), nil, &employee)
	return employee, err
}

// GetEmployeeName implements task.EmployeeDirectory
func (c *Client) GetEmployeeName(ctx context.Context, id string) (string, error) {
	employee, err := c.GetEmployee(ctx, id)
	if err != nil {
		return "", err
	}
	return employee.FullName, nil
}
