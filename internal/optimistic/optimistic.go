// Package optimistic 实现"快照 → 先行应用 → 提交或回滚"的乐观更新模式，
// 供点赞、评论、关注等社交交互复用。
package optimistic

import (
	"context"

	"alumni-client/internal/common"
	"alumni-client/internal/util"

	"go.uber.org/zap"
)

// Command 描述一次乐观变更。
// Key 标识实体与动作（如 "post:7:like"），同一键同时只允许一个在途请求；
// 调用方可通过 Busy 检查同一实体的其他动作键，在在途变更期间拒绝删除。
type Command[S any] struct {
	Key       string
	Snapshot  func() S                        // 捕获回滚快照
	Apply     func()                          // 立即应用新状态
	Do        func(ctx context.Context) error // 发起对应的服务调用
	Reconcile func()                          // 可选：用服务端权威数据对账
	Revert    func(S)                         // 失败时恢复快照
}

// Runner 串行化同键命令并执行乐观更新流程
type Runner struct {
	guard *common.InflightGuard
}

func NewRunner() *Runner {
	return &Runner{guard: common.NewInflightGuard()}
}

// Busy 判断指定键是否有在途命令，用于禁用触发控件
func (r *Runner) Busy(key string) bool {
	return r.guard.Busy(key)
}

// Run 执行一次乐观命令。
// 同键命令在途时直接拒绝；失败时精确恢复第 1 步捕获的快照。
func Run[S any](ctx context.Context, r *Runner, cmd Command[S]) error {
	if err := r.guard.Acquire(cmd.Key); err != nil {
		return err
	}
	defer r.guard.Release(cmd.Key)

	snapshot := cmd.Snapshot()
	cmd.Apply()

	if err := cmd.Do(ctx); err != nil {
		cmd.Revert(snapshot)
		util.Logger.Debug("乐观更新回滚",
			zap.String("key", cmd.Key),
			zap.Error(err))
		return err
	}

	if cmd.Reconcile != nil {
		cmd.Reconcile()
	}
	return nil
}
