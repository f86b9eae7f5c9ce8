package api

import (
	"context"

	"servicehub/models"
)

// CreateBooking submits a new booking and returns the created record.
func (c *Client) CreateBooking(ctx context.Context, input CreateBookingInput) (*models.Booking, error) {
	var dto bookingDTO
	if err := c.do(ctx, "POST", "/bookings", input, &dto); err != nil {
		return nil, err
	}
	booking := dto.toModel()
	return &booking, nil
}

// CustomerBookings lists the authenticated customer's bookings.
func (c *Client) CustomerBookings(ctx context.Context) ([]models.Booking, error) {
	return c.listBookings(ctx, "/bookings/customer")
}

// ProviderBookings lists the bookings assigned to the authenticated provider.
func (c *Client) ProviderBookings(ctx context.Context) ([]models.Booking, error) {
	return c.listBookings(ctx, "/bookings/provider")
}

func (c *Client) listBookings(ctx context.Context, path string) ([]models.Booking, error) {
	var dtos []bookingDTO
	if err := c.do(ctx, "GET", path, nil, &dtos); err != nil {
		return nil, err
	}
	bookings := make([]models.Booking, 0, len(dtos))
	for _, dto := range dtos {
		bookings = append(bookings, dto.toModel())
	}
	return bookings, nil
}

// UpdateBookingStatus advances a booking to the given status. The backend
// enforces assignment; the caller enforces the forward-only transition.
func (c *Client) UpdateBookingStatus(ctx context.Context, bookingID, status string) (*models.Booking, error) {
	body := map[string]string{"status": status}
	var dto bookingDTO
	if err := c.do(ctx, "PATCH", "/bookings/"+bookingID+"/status", body, &dto); err != nil {
		return nil, err
	}
	booking := dto.toModel()
	return &booking, nil
}
