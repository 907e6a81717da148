package service

import (
	"strconv"
	"strings"

	"github.com/gomodule/redigo/redis"
	"go.uber.org/zap"

	"msgsource-go/constant"
	"msgsource-go/internal/model"
	"msgsource-go/internal/repository"
	"msgsource-go/pkg/logging"
)

// RecordMiss 记录一次翻译未命中（按天的 hash 计数器）
func RecordMiss(locale, key string) {
	if repository.RedisPool == nil {
		return
	}
	conn := repository.RedisPool.Get()
	defer func() {
		if err := conn.Close(); err != nil {
			logging.Logger.Warn("Redis connection close failed", zap.Error(err))
		}
	}()

	missKey := constant.GetDailyMissKey(constant.GetDateKey())

	_, err := conn.Do("HINCRBY", missKey, constant.GetMissField(locale, key), 1)
	if err != nil {
		logging.Logger.Error("Failed to record miss",
			zap.String("key", missKey),
			zap.String("msg_key", key),
			zap.Error(err))
	}

	_, err = conn.Do("EXPIRE", missKey, 3*24*3600) // 3天过期
	if err != nil {
		logging.Logger.Error("Failed to record miss Expire",
			zap.String("key", missKey),
			zap.Error(err))
	}
}

// GetDailyMiss 获取某日期某 (locale, key) 的未命中次数
func GetDailyMiss(conn redis.Conn, locale, key, date string) (int64, error) {
	missKey := constant.GetDailyMissKey(date)

	reply, err := conn.Do("HGET", missKey, constant.GetMissField(locale, key))
	if err != nil {
		logging.Logger.Error("Failed to get daily miss",
			zap.String("key", missKey),
			zap.String("msg_key", key),
			zap.Error(err))
		return 0, err
	}
	if reply == nil {
		return 0, nil
	}

	result, err := redis.Int64(reply, err)
	if err != nil {
		logging.Logger.Error("Failed to parse daily miss",
			zap.String("key", missKey),
			zap.String("msg_key", key),
			zap.Error(err))
		return 0, err
	}
	return result, nil
}

// StatisticalData 把当日的未命中计数器落库（定时任务调用）
func StatisticalData() error {
	conn := repository.RedisPool.Get()
	defer func() {
		if err := conn.Close(); err != nil {
			logging.Logger.Warn("Redis connection close failed", zap.Error(err))
		}
	}()

	date := constant.GetDateKey()
	missKey := constant.GetDailyMissKey(date)

	values, err := redis.StringMap(conn.Do("HGETALL", missKey))
	if err != nil {
		logging.Logger.Error("Failed to read miss counters",
			zap.String("key", missKey),
			zap.Error(err))
		return err
	}

	// YYYY-MM-DD，与表结构的 date 类型对齐
	dbDate := date[:4] + "-" + date[4:6] + "-" + date[6:]

	for field, countStr := range values {
		locale, msgKey, ok := strings.Cut(field, "|")
		if !ok {
			continue
		}

		count, err := strconv.ParseInt(countStr, 10, 64)
		if err != nil {
			continue
		}

		var stat model.MissStat
		err = repository.DB.
			Where("date = ? AND msg_key = ? AND locale = ?", dbDate, msgKey, locale).
			First(&stat).Error
		if err == nil {
			stat.Count = count
			if err := repository.DB.Save(&stat).Error; err != nil {
				logging.Logger.Error("Failed to update miss stat", zap.Error(err))
			}
			continue
		}

		stat = model.MissStat{
			Date:   dbDate,
			MsgKey: msgKey,
			Locale: locale,
			Count:  count,
		}
		if err := repository.DB.Create(&stat).Error; err != nil {
			logging.Logger.Error("Failed to create miss stat", zap.Error(err))
		}
	}

	return nil
}
