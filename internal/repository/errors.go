package repository

import "errors"

// общие сигнальные ошибки адаптеров хранилища
var (
	ErrNoRowsUpdated = errors.New("обновление не затронуло ни одной строки")
)
