package list_appointments

import (
	"net/url"
	"strconv"

	"github.com/autoshop/garage-booking/internal/service/appointments/models"
)

// ToServiceRequest создает фильтр из query параметров: from, to, status, includeCancelled
func ToServiceRequest(query url.Values) (*models.ListRequest, error) {
	req := &models.ListRequest{}

	if v := query.Get("from"); v != "" {
		req.From = &v
	}
	if v := query.Get("to"); v != "" {
		req.To = &v
	}
	if v := query.Get("status"); v != "" {
		req.Status = &v
	}

	if v := query.Get("includeCancelled"); v != "" {
		include, err := strconv.ParseBool(v)
		if err != nil {
			return nil, err
		}
		req.IncludeCancelled = include
	}

	return req, nil
}
