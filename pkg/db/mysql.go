package db

import (
	"sync"

	"defect-report-log/config"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

var mysqlDB *gorm.DB
var mysqlOnce sync.Once

// InitMySQL 결함 리포트 원본을 읽어 올 MySQL 연결 초기화
// 복제본 DSN 이 설정돼 있으면 dbresolver 로 읽기 트래픽을 복제본으로 보낸다
func InitMySQL(cfg *config.MySQLConfig) error {
	var err error
	mysqlOnce.Do(func() {
		mysqlDB, err = gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{})
		if err != nil {
			zap.S().Errorf("mysql 연결 실패: %v", err)
			return
		}

		if len(cfg.Replicas) > 0 {
			replicas := make([]gorm.Dialector, 0, len(cfg.Replicas))
			for _, dsn := range cfg.Replicas {
				replicas = append(replicas, mysql.Open(dsn))
			}
			if err = mysqlDB.Use(dbresolver.Register(dbresolver.Config{
				Replicas: replicas,
			})); err != nil {
				zap.S().Errorf("dbresolver 등록 실패: %v", err)
				return
			}
		}

		// 연결 확인
		sqlDB, e := mysqlDB.DB()
		if e != nil {
			err = e
			zap.S().Errorf("mysql 연결 획득 실패: %v", err)
			return
		}
		if err = sqlDB.Ping(); err != nil {
			zap.S().Errorf("mysql 연결 확인 실패: %v", err)
			return
		}

		zap.S().Debug("mysql 초기화 완료...")
	})
	return err
}

// GetMySQL MySQL 연결 반환
func GetMySQL() *gorm.DB {
	return mysqlDB
}
