// Package objectstore 提供基于badger的后备对象存储实现
//
// 对象以确定性CBOR编码落盘，读路径前置一层LRU缓存。
// 执行核心只通过BackingStore窄接口消费本包。
package objectstore

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v3"
	"github.com/fxamacker/cbor/v2"
	lru "github.com/hashicorp/golang-lru/v2"

	executioniface "github.com/orbchain/v1/pkg/interfaces/execution"
	logiface "github.com/orbchain/v1/pkg/interfaces/infrastructure/log"
	"github.com/orbchain/v1/pkg/types"
)

// Options 对象存储配置
type Options struct {
	// Dir 数据目录（InMemory为真时忽略）
	Dir string

	// InMemory 纯内存模式（测试使用）
	InMemory bool

	// CacheSize 读缓存容量（对象个数）
	CacheSize int
}

// DefaultOptions 默认配置
func DefaultOptions(dir string) Options {
	return Options{Dir: dir, CacheSize: 4096}
}

// Store badger后备对象存储
type Store struct {
	db     *badger.DB
	logger logiface.Logger
	cache  *lru.Cache[types.ObjectID, *types.Object]
}

var _ executioniface.BackingStore = (*Store)(nil)

var objKeyPrefix = []byte("obj/")

// NewStore 打开对象存储
func NewStore(opts Options, logger logiface.Logger) (*Store, error) {
	badgerOpts := badger.DefaultOptions(opts.Dir).
		WithInMemory(opts.InMemory).
		WithLogger(nil)
	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, fmt.Errorf("打开对象存储失败: %w", err)
	}
	cacheSize := opts.CacheSize
	if cacheSize <= 0 {
		cacheSize = 4096
	}
	cache, err := lru.New[types.ObjectID, *types.Object](cacheSize)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("初始化读缓存失败: %w", err)
	}
	return &Store{
		db:     db,
		logger: logger.With("module", "persistence.objectstore"),
		cache:  cache,
	}, nil
}

// GetObject 读取对象（缺失返回nil, nil）
func (s *Store) GetObject(id types.ObjectID) (*types.Object, error) {
	if obj, ok := s.cache.Get(id); ok {
		return obj.Clone(), nil
	}
	var obj *types.Object
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(objKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			decoded := &types.Object{}
			if derr := cbor.Unmarshal(val, decoded); derr != nil {
				return fmt.Errorf("对象 %s 记录损坏: %w", id, derr)
			}
			obj = decoded
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("读取对象 %s 失败: %w", id, err)
	}
	if obj == nil {
		return nil, nil
	}
	s.cache.Add(id, obj.Clone())
	return obj, nil
}

// GetPackage 读取包对象（存在但非包属于存储损坏）
func (s *Store) GetPackage(id types.ObjectID) (*types.Object, error) {
	obj, err := s.GetObject(id)
	if err != nil || obj == nil {
		return obj, err
	}
	if !obj.IsPackage() {
		return nil, fmt.Errorf("对象 %s 不是包", id)
	}
	return obj, nil
}

// PutObject 写入单个对象
func (s *Store) PutObject(obj *types.Object) error {
	data, err := encodeObject(obj)
	if err != nil {
		return err
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(objKey(obj.ID), data)
	})
	if err != nil {
		return fmt.Errorf("写入对象 %s 失败: %w", obj.ID, err)
	}
	s.cache.Add(obj.ID, obj.Clone())
	return nil
}

// ApplyChanges 原子落盘一笔交易的变更集
func (s *Store) ApplyChanges(inner *types.InnerTemporaryStore) error {
	wb := s.db.NewWriteBatch()
	defer wb.Cancel()

	for _, obj := range inner.WrittenObjects {
		data, err := encodeObject(obj)
		if err != nil {
			return err
		}
		if err := wb.Set(objKey(obj.ID), data); err != nil {
			return fmt.Errorf("批量写入对象 %s 失败: %w", obj.ID, err)
		}
	}
	for id := range inner.DeletedObjects {
		if err := wb.Delete(objKey(id)); err != nil {
			return fmt.Errorf("批量删除对象 %s 失败: %w", id, err)
		}
	}
	if err := wb.Flush(); err != nil {
		return fmt.Errorf("变更集落盘失败: %w", err)
	}

	for id, obj := range inner.WrittenObjects {
		s.cache.Add(id, obj.Clone())
	}
	for id := range inner.DeletedObjects {
		s.cache.Remove(id)
	}
	s.logger.Debugf("变更集落盘: written=%d deleted=%d version=%d",
		len(inner.WrittenObjects), len(inner.DeletedObjects), inner.LamportVersion)
	return nil
}

// Close 关闭存储
func (s *Store) Close() error {
	return s.db.Close()
}

func objKey(id types.ObjectID) []byte {
	key := make([]byte, 0, len(objKeyPrefix)+len(id))
	key = append(key, objKeyPrefix...)
	return append(key, id[:]...)
}

func encodeObject(obj *types.Object) ([]byte, error) {
	data, err := cbor.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("编码对象 %s 失败: %w", obj.ID, err)
	}
	return data, nil
}
