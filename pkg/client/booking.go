package client

import (
	"fmt"
	"net/url"
)

type BookingClient struct {
	httpClient *HttpClient
}

func NewBookingClient(baseURL string) *BookingClient {
	return &BookingClient{
		httpClient: NewHttpClient(baseURL),
	}
}

func (c *BookingClient) As(userID, role string) *BookingClient {
	c.httpClient.As(userID, role)
	return c
}

func (c *BookingClient) Create(body any) (*Response, error) {
	return c.httpClient.POST("/api/v1/bookings", body)
}

func (c *BookingClient) GetAll(roomID, date, userID string, limit int, offset int64) (*Response, error) {
	q := url.Values{}
	if roomID != "" {
		q.Set("room_id", roomID)
	}
	if date != "" {
		q.Set("date", date)
	}
	if userID != "" {
		q.Set("user_id", userID)
	}
	q.Set("limit", fmt.Sprintf("%d", limit))
	q.Set("offset", fmt.Sprintf("%d", offset))

	return c.httpClient.GET("/api/v1/bookings?" + q.Encode())
}

func (c *BookingClient) GetByID(id string) (*Response, error) {
	return c.httpClient.GET("/api/v1/bookings/id/" + url.PathEscape(id))
}

func (c *BookingClient) Update(id string, body any) (*Response, error) {
	return c.httpClient.PATCH("/api/v1/bookings/id/"+url.PathEscape(id), body)
}

func (c *BookingClient) Cancel(id string) (*Response, error) {
	return c.httpClient.POST("/api/v1/bookings/id/"+url.PathEscape(id)+"/cancel", nil)
}

func (c *BookingClient) Delete(id string) (*Response, error) {
	return c.httpClient.DELETE("/api/v1/bookings/id/" + url.PathEscape(id))
}

func (c *BookingClient) CheckAvailability(roomID, date, startTime, endTime string) (*Response, error) {
	q := url.Values{}
	q.Set("room_id", roomID)
	q.Set("date", date)
	q.Set("start_time", startTime)
	q.Set("end_time", endTime)

	return c.httpClient.GET("/api/v1/bookings/availability?" + q.Encode())
}
