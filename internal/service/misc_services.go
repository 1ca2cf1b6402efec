package service

import (
	"context"
	"net/url"

	"alumni-client/internal/apiclient"
	"alumni-client/internal/errors"
	"alumni-client/internal/model"
	"alumni-client/internal/util"

	"go.uber.org/zap"
)

// SearchService 处理用户搜索
type SearchService struct {
	client *apiclient.Client
}

func NewSearchService(client *apiclient.Client) *SearchService {
	return &SearchService{client: client}
}

// Users 按关键字搜索用户
func (s *SearchService) Users(ctx context.Context, query string) ([]*model.User, error) {
	if query == "" {
		return nil, errors.New(errors.ErrValidation, "search query is required")
	}
	params := url.Values{}
	params.Set("q", query)

	var users []*model.User
	if err := s.client.Get(ctx, "/search/users", params, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// DonationService 处理捐赠流程
type DonationService struct {
	client *apiclient.Client
}

func NewDonationService(client *apiclient.Client) *DonationService {
	return &DonationService{client: client}
}

// Process 提交捐赠，返回交易回执
func (s *DonationService) Process(ctx context.Context, req model.DonationRequest) (*model.DonationReceipt, error) {
	if err := util.Validate.Struct(req); err != nil {
		return nil, errors.Wrap(errors.ErrValidation, "invalid donation data", err)
	}

	var receipt model.DonationReceipt
	if err := s.client.PostJSON(ctx, "/donations", req, &receipt); err != nil {
		util.Logger.Warn("捐赠提交失败", zap.Float64("amount", req.Amount), zap.Error(err))
		return nil, err
	}
	return &receipt, nil
}

// CollegeService 处理院校注册
type CollegeService struct {
	client *apiclient.Client
}

func NewCollegeService(client *apiclient.Client) *CollegeService {
	return &CollegeService{client: client}
}

// Register 提交院校注册申请
func (s *CollegeService) Register(ctx context.Context, reg model.CollegeRegistration) (*model.CollegeConfirmation, error) {
	if err := util.Validate.Struct(reg); err != nil {
		return nil, errors.Wrap(errors.ErrValidation, "invalid registration data", err)
	}

	var confirmation model.CollegeConfirmation
	if err := s.client.PostJSON(ctx, "/colleges/register", reg, &confirmation); err != nil {
		util.Logger.Warn("院校注册失败", zap.String("college", reg.CollegeName), zap.Error(err))
		return nil, err
	}
	return &confirmation, nil
}
