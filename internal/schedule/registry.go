package schedule

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"
)

// ── 学期登记表 ──

// ErrUnknownTerm 登记表中不存在该学年学期
var ErrUnknownTerm = errors.New("学期不存在")

// ErrInvalidTerm 学期开始日期晚于结束日期
var ErrInvalidTerm = errors.New("学期开始日期晚于结束日期")

// TermKey 学期唯一键：民国学年 + 学期序号（1 或 2）
type TermKey struct {
	Year int
	Term int
}

// Term 一个学期的起止日期
type Term struct {
	Year  int
	Term  int
	Start time.Time
	End   time.Time
}

// Key 返回学期唯一键
func (t Term) Key() TermKey {
	return TermKey{Year: t.Year, Term: t.Term}
}

func (t Term) String() string {
	return fmt.Sprintf("学年 %d 第 %d 学期 (%s 到 %s)",
		t.Year, t.Term, t.Start.Format("2006-01-02"), t.End.Format("2006-01-02"))
}

// Registry 学期登记表
//
// 进程内唯一的可变状态。条目来源有二：启动时的配置预置、校历同步推断；
// 同键写入一律覆盖（last-write-wins）。写入由调用方串行化（一次只跑一个
// 同步任务），读锁仅保护 map 本身。
type Registry struct {
	mu    sync.RWMutex
	terms map[TermKey]Term
}

// NewRegistry 创建空登记表
func NewRegistry() *Registry {
	return &Registry{terms: make(map[TermKey]Term)}
}

// Resolve 查询学年学期的起止日期
func (r *Registry) Resolve(year, term int) (Term, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.terms[TermKey{Year: year, Term: term}]
	if !ok {
		return Term{}, fmt.Errorf("%w: %d-%d", ErrUnknownTerm, year, term)
	}
	return t, nil
}

// Put 写入学期条目，同键覆盖
func (r *Registry) Put(t Term) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.terms[t.Key()] = t
}

// All 返回全部学期条目，按学年、学期排序
func (r *Registry) All() []Term {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Term, 0, len(r.terms))
	for _, t := range r.terms {
		result = append(result, t)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Year != result[j].Year {
			return result[i].Year < result[j].Year
		}
		return result[i].Term < result[j].Term
	})
	return result
}
