// Package types 提供执行核心的公共类型定义
package types

// TransactionContext 交易作用域的可变上下文
//
// 由一次编排器调用独占持有，随调用链以独占引用传递，
// 绝不跨并发交易共享；生命周期与单笔交易执行一致。
type TransactionContext struct {
	Signer Address
	Digest TransactionDigest
	Epoch  EpochID

	// EpochTimestampMS 当前纪元的起始时间戳（毫秒）
	EpochTimestampMS  uint64
	GasPrice          uint64
	ReferenceGasPrice uint64
	GasBudget         uint64

	// Sponsor 代付方（燃料所有者与签名者不同时非nil）
	Sponsor *Address

	// idCounter 本交易内派生新对象ID的单调计数
	idCounter uint64
}

// NewTransactionContext 构造交易上下文
func NewTransactionContext(signer Address, digest TransactionDigest, epoch EpochID, epochTimestampMS, rgp, gasPrice, budget uint64, sponsor *Address) *TransactionContext {
	return &TransactionContext{
		Signer:            signer,
		Digest:            digest,
		Epoch:             epoch,
		EpochTimestampMS:  epochTimestampMS,
		ReferenceGasPrice: rgp,
		GasPrice:          gasPrice,
		GasBudget:         budget,
		Sponsor:           sponsor,
	}
}

// FreshObjectID 派生确定性的新对象ID
//
// 以交易摘要与单调计数为输入，所有验证者派生出相同的ID序列。
func (c *TransactionContext) FreshObjectID() ObjectID {
	var id ObjectID
	copy(id[:24], c.Digest[:24])
	c.idCounter++
	n := c.idCounter
	for i := 0; i < 8; i++ {
		id[31-i] = byte(n >> (8 * i))
	}
	return id
}
