package services

import "errors"

var (
	// ErrUpstreamUnavailable - сетевая ошибка, ошибка авторизации или таймаут upstream API
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	// ErrInconsistentData - ссылка указывает на несуществующую запись
	ErrInconsistentData = errors.New("inconsistent data")
	// ErrRenderFailure - день не может быть отрендерен целиком
	ErrRenderFailure = errors.New("render failure")
)
