package smsgateway

// Message SMS сообщение для отправки через шлюз
type Message struct {
	To   string `json:"to"`   // номер получателя в E.164
	Body string `json:"body"` // текст сообщения
}

// SendResult результат отправки от шлюза
type SendResult struct {
	MessageID string `json:"message_id"`
	Status    string `json:"status"`
}

// ErrorResponse модель ошибки от шлюза
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
