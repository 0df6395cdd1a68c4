package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// RunMigrations 将内嵌的 SQL 迁移应用到最新版本
func RunMigrations(db *sql.DB, logger *zap.Logger) error {
	src, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return fmt.Errorf("读取内嵌迁移失败: %w", err)
	}

	drv, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("初始化迁移驱动失败: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", drv)
	if err != nil {
		return fmt.Errorf("创建迁移实例失败: %w", err)
	}

	switch err := m.Up(); {
	case err == nil:
	case errors.Is(err, migrate.ErrNoChange):
		logger.Info("数据库结构已是最新")
	default:
		return fmt.Errorf("应用迁移失败: %w", err)
	}

	if version, dirty, verr := m.Version(); verr == nil {
		if dirty {
			logger.Warn("数据库迁移处于 dirty 状态，需人工介入", zap.Uint("version", version))
		} else {
			logger.Info("数据库迁移就绪", zap.Uint("version", version))
		}
	}

	return nil
}
