package client

import (
	"context"
	"fmt"
	"net/url"

	"campusbook/pkg/model"
)

type FacilityClient struct {
	httpClient *HttpClient
}

func NewFacilityClient(baseURL string) *FacilityClient {
	return &FacilityClient{
		httpClient: NewHttpClient(baseURL),
	}
}

func (c *FacilityClient) GetAll(ctx context.Context) (*Response, error) {
	return c.httpClient.GET(ctx, "/api/v1/facilities")
}

func (c *FacilityClient) GetByID(ctx context.Context, id string) (*Response, error) {
	return c.httpClient.GET(ctx, "/api/v1/facilities/"+url.PathEscape(id))
}

func (c *FacilityClient) DecodeFacility(resp *Response) (*model.Facility, error) {
	var facility model.Facility
	if err := resp.DecodeJSON(&facility); err != nil {
		return nil, fmt.Errorf("could not decode facility json: %w", err)
	}
	return &facility, nil
}

func (c *FacilityClient) DecodeFacilities(resp *Response) ([]*model.Facility, error) {
	var facilities []*model.Facility
	if err := resp.DecodeJSON(&facilities); err != nil {
		return nil, fmt.Errorf("could not decode facility list: %w", err)
	}
	return facilities, nil
}
