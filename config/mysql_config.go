package config

import (
	"fmt"

	"github.com/pkg/errors"
)

type MySQLConfig struct {
	Host     string   `json:"host" yaml:"host"`
	Port     int      `json:"port" yaml:"port"`
	User     string   `json:"user" yaml:"user"`
	Password string   `json:"password" yaml:"password"`
	Database string   `json:"database" yaml:"database"`
	Replicas []string `json:"replicas" yaml:"replicas"` // 읽기 복제본 DSN 목록 (선택)
}

func (m *MySQLConfig) Validate() []error {
	var errs = make([]error, 0)
	if m.Host == "" {
		errs = append(errs, errors.Errorf("MySQL 호스트가 비어 있음"))
	}
	if m.Port <= 0 {
		errs = append(errs, errors.Errorf("MySQL 포트가 올바르지 않음: %d", m.Port))
	}
	if m.Database == "" {
		errs = append(errs, errors.Errorf("MySQL 데이터베이스 이름이 비어 있음"))
	}
	return errs
}

func NewDefaultMySQLConfig() *MySQLConfig {
	return &MySQLConfig{
		Host:     "127.0.0.1",
		Port:     3306,
		User:     "root",
		Database: "defect_report",
	}
}

func (m *MySQLConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		m.User, m.Password, m.Host, m.Port, m.Database)
}
