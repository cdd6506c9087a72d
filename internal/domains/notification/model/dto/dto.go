package dto

import (
	"roomify/internal/domains/notification/model"
	"roomify/shared"
	gDto "roomify/shared/dto"
)

type CreateNotificationRequest struct {
	UserID    string `json:"user_id"    validate:"required,notblank"`
	Type      string `json:"type"       validate:"required,oneof=booking_created booking_request booking_approved booking_rejected booking_cancelled booking_checked_in booking_checked_out booking_reminder"`
	Title     string `json:"title"      validate:"required,notblank,max=200"`
	Message   string `json:"message"    validate:"required,notblank,max=2000"`
	BookingID string `json:"booking_id" validate:"omitempty"`
}

func (r *CreateNotificationRequest) ToModel() model.Notification {
	return model.Notification{
		UserID:    r.UserID,
		Type:      r.Type,
		Title:     r.Title,
		Message:   r.Message,
		BookingID: r.BookingID,
	}
}

type NotificationResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	BookingID string `json:"booking_id,omitempty"`
	Read      bool   `json:"read"`
	gDto.Metadata
}

func (r *NotificationResponse) FromModel(m model.Notification) {
	r.ID = m.ID
	r.UserID = m.UserID
	r.Type = m.Type
	r.Title = m.Title
	r.Message = m.Message
	r.BookingID = m.BookingID
	r.Read = m.Read
	r.Metadata.FromModel(m.Metadata)
}

type GetNotificationsResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	Unread        int                    `json:"unread"`
	TotalPage     int                    `json:"total_page"`
	TotalData     int                    `json:"total_data"`
}

func (r *GetNotificationsResponse) FromModels(models []model.Notification, unread, totalData, limit int) {
	r.Unread = unread
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Notifications = make([]NotificationResponse, len(models))
	for i, m := range models {
		r.Notifications[i].FromModel(m)
	}
}

type UnreadCountResponse struct {
	Unread int `json:"unread"`
}
