// Package migrations встраивает SQL миграции в бинарник,
// чтобы cmd/migrate не зависел от файловой системы при деплое.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
