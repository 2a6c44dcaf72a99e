// Package assets はバイナリに埋め込む静的ファイルを提供します。
package assets

import "embed"

// Migrations は golang-migrate 形式のスキーマ定義です。
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir は Migrations 内のディレクトリ名です。
const MigrationsDir = "migrations"
