package errors

import (
	"database/sql"
	"errors"

	"github.com/Azure/azure-storage-blob-go/azblob"
	"github.com/go-sql-driver/mysql"
)

var (
	// ErrDupeKey is returned when a unique index rejects an insert or update.
	ErrDupeKey = New("resource already exits")
	// ErrDeadlock is returned when there is a transaction deadlock.
	ErrDeadlock = New("mysql transaction deadlock")
	// ErrLockWaitTimeout is returned where there is a mysql lock wait timeout.
	ErrLockWaitTimeout = New("mysql lock wait timeout")
	// ErrRowsNotFound is returned when a query matched no row.
	ErrRowsNotFound = sql.ErrNoRows
	// ErrUnknownContainer is returned when the azure container name is invalid.
	ErrUnknownContainer = New("Unknown azure container")
	// ErrAzureConfig is returned when missing values in azure blob config
	ErrAzureConfig = New("missing values in azure blob config")
)

// mysql server error numbers, see
// https://dev.mysql.com/doc/mysql-errors/8.0/en/server-error-reference.html
var mysqlErrors = map[uint16]error{
	1062: ErrDupeKey,
	1205: ErrLockWaitTimeout,
	1213: ErrDeadlock,
}

// SQLError maps err onto the errors of this package when possible, else returns it unchanged.
func SQLError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrRowsNotFound
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		if mapped, ok := mysqlErrors[mysqlErr.Number]; ok {
			return mapped
		}
	}
	return err
}

// IsTransient reports whether a failed transaction is worth retrying.
func IsTransient(err error) bool {
	mapped := SQLError(err)
	return mapped == ErrDeadlock || mapped == ErrLockWaitTimeout
}

// AzureError maps the blob storage errors that callers handle onto the errors of this package.
func AzureError(err error) error {
	var serr azblob.StorageError
	if !errors.As(err, &serr) {
		return err
	}
	switch serr.ServiceCode() {
	case azblob.ServiceCodeBlobNotFound:
		return ErrNotFound
	case azblob.ServiceCodeContainerNotFound:
		return ErrUnknownContainer
	}
	return err
}
