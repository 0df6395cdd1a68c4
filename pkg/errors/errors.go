package errors

import "errors"

// ErrOptimisticLock 乐观锁冲突：版本号校验失败，记录已被并发修改
var ErrOptimisticLock = errors.New("记录已被并发修改，请刷新后重试")
