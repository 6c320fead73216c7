package client

import (
	"fmt"
	"net/url"
)

type RoomClient struct {
	httpClient *HttpClient
}

func NewRoomClient(baseURL string) *RoomClient {
	return &RoomClient{
		httpClient: NewHttpClient(baseURL),
	}
}

func (c *RoomClient) As(userID, role string) *RoomClient {
	c.httpClient.As(userID, role)
	return c
}

func (c *RoomClient) Create(body any) (*Response, error) {
	return c.httpClient.POST("/api/v1/rooms", body)
}

// Search lists rooms matching the given filters. Zero values are omitted.
// When date, startTime and endTime are all set the result is restricted
// to rooms free in that window.
func (c *RoomClient) Search(capacity int, roomType, building, location, date, startTime, endTime string) (*Response, error) {
	q := url.Values{}
	if capacity > 0 {
		q.Set("capacity", fmt.Sprintf("%d", capacity))
	}
	if roomType != "" {
		q.Set("type", roomType)
	}
	if building != "" {
		q.Set("building", building)
	}
	if location != "" {
		q.Set("location", location)
	}
	if date != "" {
		q.Set("date", date)
	}
	if startTime != "" {
		q.Set("start_time", startTime)
	}
	if endTime != "" {
		q.Set("end_time", endTime)
	}

	path := "/api/v1/rooms"
	if encoded := q.Encode(); encoded != "" {
		path += "?" + encoded
	}
	return c.httpClient.GET(path)
}

func (c *RoomClient) GetByID(id string) (*Response, error) {
	return c.httpClient.GET("/api/v1/rooms/id/" + url.PathEscape(id))
}

func (c *RoomClient) Update(id string, body any) (*Response, error) {
	return c.httpClient.PATCH("/api/v1/rooms/id/"+url.PathEscape(id), body)
}

func (c *RoomClient) Delete(id string) (*Response, error) {
	return c.httpClient.DELETE("/api/v1/rooms/id/" + url.PathEscape(id))
}

func (c *RoomClient) Timetable(id, date string) (*Response, error) {
	q := url.Values{}
	q.Set("date", date)
	return c.httpClient.GET("/api/v1/rooms/id/" + url.PathEscape(id) + "/timetable?" + q.Encode())
}
