package postgres

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// Migrator は埋め込みマイグレーションを適用します。
type Migrator struct {
	m *migrate.Migrate
}

// NewMigrator は fsys 内の dir を移行元として Migrator を生成します。
func NewMigrator(fsys fs.FS, dir, dsn string) (*Migrator, error) {
	src, err := iofs.New(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("postgres: open migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: create migrate instance: %w", err)
	}

	return &Migrator{m: m}, nil
}

// Up は未適用のマイグレーションをすべて適用します。適用済みの場合は何もしません。
func (m *Migrator) Up() error {
	if err := m.m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("postgres: migrate up: %w", err)
	}
	return nil
}

// Down はすべてのマイグレーションを巻き戻します。
func (m *Migrator) Down() error {
	if err := m.m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("postgres: migrate down: %w", err)
	}
	return nil
}

// Drop はスキーマ内のすべてのオブジェクトを削除します。
func (m *Migrator) Drop() error {
	if err := m.m.Drop(); err != nil {
		return fmt.Errorf("postgres: migrate drop: %w", err)
	}
	return nil
}

// Version は現在のバージョンを返します。未適用の場合 applied は false です。
func (m *Migrator) Version() (version uint, dirty bool, applied bool, err error) {
	version, dirty, err = m.m.Version()
	if err != nil {
		if errors.Is(err, migrate.ErrNilVersion) {
			return 0, false, false, nil
		}
		return 0, false, false, fmt.Errorf("postgres: migrate version: %w", err)
	}
	return version, dirty, true, nil
}

// Close は移行元と接続を閉じます。
func (m *Migrator) Close() error {
	srcErr, dbErr := m.m.Close()
	return errors.Join(srcErr, dbErr)
}
