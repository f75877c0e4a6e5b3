package store

import (
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Dao struct {
	db *gorm.DB
}

func NewDao(url, scheme, user, passwd string) *Dao {
	dao := &Dao{}
	Logger := logger.Default
	Logger = Logger.LogMode(logger.Warn)
	db, err := gorm.Open(mysql.Open(user+":"+passwd+"@tcp("+url+")/"+
		scheme+"?charset=utf8"), &gorm.Config{Logger: Logger})
	if err != nil {
		panic(err)
	}
	err = db.AutoMigrate(&RelaySwap{}, &RelaySwapStep{}, &UsageRecord{})
	if err != nil {
		panic(err)
	}
	dao.db = db
	return dao
}

func (dao *Dao) SaveRelaySwap(swap *RelaySwap) error {
	return dao.db.Create(swap).Error
}

func (dao *Dao) SaveUsageRecord(record *UsageRecord) error {
	return dao.db.Create(record).Error
}

func (dao *Dao) SelectRelaySwap(owner string) ([]*RelaySwap, error) {
	swaps := make([]*RelaySwap, 0)
	res := dao.db.Where("owner = ?", owner).Preload("RelaySwapSteps").Find(&swaps)
	return swaps, res.Error
}

func (dao *Dao) SelectUsageRecord(owner string) ([]*UsageRecord, error) {
	records := make([]*UsageRecord, 0)
	res := dao.db.Where("owner = ?", owner).Find(&records)
	return records, res.Error
}
