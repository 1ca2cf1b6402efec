package view

import (
	"context"
	"sync"

	"alumni-client/internal/errors"
	"alumni-client/internal/model"
	"alumni-client/internal/service/interfaces"
)

// SearchView 持有用户搜索页的状态
type SearchView struct {
	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc

	results []*model.User
	loading bool
	errMsg  string

	svc interfaces.SearchService
}

func NewSearchView(parent context.Context, svc interfaces.SearchService) *SearchView {
	ctx, cancel := context.WithCancel(parent)
	return &SearchView{ctx: ctx, cancel: cancel, svc: svc}
}

func (v *SearchView) Close() {
	v.cancel()
}

func (v *SearchView) Results() []*model.User {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]*model.User, len(v.results))
	copy(out, v.results)
	return out
}

func (v *SearchView) Loading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loading
}

func (v *SearchView) Error() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.errMsg
}

// Search 按关键字搜索用户
func (v *SearchView) Search(query string) error {
	v.mu.Lock()
	v.loading = true
	v.errMsg = ""
	v.mu.Unlock()

	results, err := v.svc.Users(v.ctx, query)
	if v.ctx.Err() != nil {
		return nil
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.loading = false
	if err != nil {
		v.errMsg = errors.Message(err)
		return err
	}
	v.results = results
	return nil
}

// DonateView 持有捐赠页的状态
type DonateView struct {
	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc

	receipt    *model.DonationReceipt
	submitting bool
	errMsg     string

	svc interfaces.DonationService
}

func NewDonateView(parent context.Context, svc interfaces.DonationService) *DonateView {
	ctx, cancel := context.WithCancel(parent)
	return &DonateView{ctx: ctx, cancel: cancel, svc: svc}
}

func (v *DonateView) Close() {
	v.cancel()
}

func (v *DonateView) Receipt() *model.DonationReceipt {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.receipt
}

func (v *DonateView) Submitting() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.submitting
}

func (v *DonateView) Error() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.errMsg
}

// Submit 提交捐赠。提交期间禁用表单；失败后重置提交状态，
// 用户无需刷新即可重试。
func (v *DonateView) Submit(req model.DonationRequest) error {
	v.mu.Lock()
	if v.submitting {
		v.mu.Unlock()
		return errors.New(errors.ErrResourceConflict, "donation already submitting")
	}
	v.submitting = true
	v.errMsg = ""
	v.mu.Unlock()

	receipt, err := v.svc.Process(v.ctx, req)
	if v.ctx.Err() != nil {
		return nil
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.submitting = false
	if err != nil {
		v.errMsg = errors.Message(err)
		return err
	}
	v.receipt = receipt
	return nil
}

// CollegeView 持有院校注册页的状态
type CollegeView struct {
	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc

	confirmation *model.CollegeConfirmation
	submitting   bool
	errMsg       string

	svc interfaces.CollegeService
}

func NewCollegeView(parent context.Context, svc interfaces.CollegeService) *CollegeView {
	ctx, cancel := context.WithCancel(parent)
	return &CollegeView{ctx: ctx, cancel: cancel, svc: svc}
}

func (v *CollegeView) Close() {
	v.cancel()
}

func (v *CollegeView) Confirmation() *model.CollegeConfirmation {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.confirmation
}

func (v *CollegeView) Error() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.errMsg
}

// Submit 提交院校注册申请
func (v *CollegeView) Submit(reg model.CollegeRegistration) error {
	v.mu.Lock()
	if v.submitting {
		v.mu.Unlock()
		return errors.New(errors.ErrResourceConflict, "registration already submitting")
	}
	v.submitting = true
	v.errMsg = ""
	v.mu.Unlock()

	confirmation, err := v.svc.Register(v.ctx, reg)
	if v.ctx.Err() != nil {
		return nil
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.submitting = false
	if err != nil {
		v.errMsg = errors.Message(err)
		return err
	}
	v.confirmation = confirmation
	return nil
}
