package chatsession

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия отсутствует или истек её TTL
	ErrSessionNotFound = errors.New("chatsession: session not found")

	// ErrStore возвращается при ошибках работы с Redis
	ErrStore = errors.New("chatsession: store error")

	// ErrEncode возвращается при ошибке сериализации состояния сессии
	ErrEncode = errors.New("chatsession: failed to encode session state")
)
