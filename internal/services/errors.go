package services

import "errors"

// Сентинельные ошибки сервисного слоя. Хендлеры переводят их в HTTP-статусы;
// «сырые» ошибки БД наружу не выходят.
var (
	ErrNotFound           = errors.New("не найдено")
	ErrValidation         = errors.New("ошибка валидации")
	ErrInvalidCredentials = errors.New("неверный email или пароль")
	ErrEmailTaken         = errors.New("адрес электронной почты уже зарегистрирован")
)
