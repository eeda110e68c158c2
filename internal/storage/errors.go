// Package storage содержит общие ошибки слоя хранения.
package storage

import "errors"

// ErrContractNotFound контракт с таким ID отсутствует.
var ErrContractNotFound = errors.New("contract not found")
