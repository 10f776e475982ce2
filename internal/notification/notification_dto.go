package notification

type NotificationResponse struct {
	ID        string  `json:"id"`
	UserID    string  `json:"user_id"`
	Type      string  `json:"type"`
	Title     string  `json:"title"`
	Message   string  `json:"message"`
	IsRead    bool    `json:"is_read"`
	RelatedID *string `json:"related_id,omitempty"`
	CreatedAt string  `json:"created_at"`
}
