// Package service 包含了应用的业务逻辑层。
package service

import (
	"errors"

	"gorm.io/gorm"

	"yojna-mitra-go/internal/model"
	"yojna-mitra-go/internal/repository"
	"yojna-mitra-go/pkg/hash"
)

// ErrUsernameTaken 表示注册时用户名已被占用。
var ErrUsernameTaken = errors.New("username already exists")

// ErrInvalidCredentials 表示登录凭证无效。
// 用户不存在与密码错误返回同一个错误，避免向调用方泄露哪一项失败。
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserService 接口定义了所有与用户相关的业务操作。
type UserService interface {
	Register(username, password string) (*model.User, error)
	Authenticate(username, password string) (*model.User, error)
}

// userService 是 UserService 接口的实现。
type userService struct {
	userRepo repository.UserRepository
}

// NewUserService 创建一个新的 UserService 实例。
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// Register 处理用户注册的业务逻辑。
// 不做用户名预查询，直接插入并依赖唯一索引识别重复，
// 以避免"查询-插入"之间的竞争窗口。
func (s *userService) Register(username, password string) (*model.User, error) {
	hashedPassword, err := hash.HashPassword(password)
	if err != nil {
		return nil, err
	}

	newUser := &model.User{
		Username: username,
		Password: hashedPassword,
	}
	if err := s.userRepo.Create(newUser); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return newUser, nil
}

// Authenticate 校验用户名与密码，成功时返回用户记录。
func (s *userService) Authenticate(username, password string) (*model.User, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !hash.CheckPasswordHash(password, user.Password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
