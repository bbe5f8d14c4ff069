package model

import "restaurant_manager/utils"

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "PENDING"
	ReservationConfirmed ReservationStatus = "CONFIRMED"
	ReservationCancelled ReservationStatus = "CANCELLED"
)

// Chuyển trạng thái hợp lệ cho staff/admin
var reservationTransitions = map[ReservationStatus][]ReservationStatus{
	ReservationPending:   {ReservationConfirmed, ReservationCancelled},
	ReservationConfirmed: {ReservationCancelled},
	ReservationCancelled: {},
}

func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	for _, allowed := range reservationTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func IsReservationStatus(s string) bool {
	switch ReservationStatus(s) {
	case ReservationPending, ReservationConfirmed, ReservationCancelled:
		return true
	}
	return false
}

type Reservation struct {
	DTO
	PublicCode  string            `gorm:"size:20;uniqueIndex" json:"publicCode"`
	CustomerID  *uint             `json:"customerId,omitempty"` // null nếu khách vãng lai (guest)
	Customer    *Customer         `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Name        string            `gorm:"not null" json:"name"`
	Email       string            `gorm:"not null" json:"email"`
	Phone       string            `gorm:"not null" json:"phone"`
	Date        utils.CustomDate  `gorm:"type:date;not null" json:"date"`
	Time        string            `gorm:"size:5;not null" json:"time"` // HH:MM
	TableNumber int               `gorm:"not null" json:"tableNumber"`
	Guests      int               `gorm:"not null" json:"guests"`
	Message     string            `json:"message"`
	Status      ReservationStatus `gorm:"size:20;not null;default:'PENDING'" json:"status"`
}

type Reservations []Reservation

type CreateReservationInput struct {
	Name        string `validate:"required" json:"name"`
	Email       string `validate:"required,email" json:"email"`
	Phone       string `validate:"required" json:"phone"`
	Date        string `validate:"required" json:"date"` // YYYY-MM-DD
	Time        string `validate:"required" json:"time"` // HH:MM
	TableNumber int    `validate:"required,min=1,max=15" json:"tableNumber"`
	Guests      int    `validate:"required,min=1,max=20" json:"guests"`
	Message     string `json:"message"`
}

type AvailabilityInput struct {
	Date                 string `validate:"required" json:"date"`
	Time                 string `validate:"required" json:"time"`
	ExcludeReservationId *uint  `json:"excludeReservationId,omitempty"`
}

type UpdateReservationStatusInput struct {
	Status string `validate:"required,oneof=PENDING CONFIRMED CANCELLED" json:"status"`
}

type FilterReservation struct {
	Pagination
	Date   string `json:"date" query:"date"`
	Status string `json:"status" query:"status" validate:"omitempty,oneof=PENDING CONFIRMED CANCELLED"`
}
