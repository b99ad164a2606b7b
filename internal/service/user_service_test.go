package service

import (
	"errors"
	"testing"

	"gorm.io/gorm"

	"yojna-mitra-go/internal/model"
	"yojna-mitra-go/pkg/hash"
)

// fakeUserRepo 是 UserRepository 的内存实现，
// 模拟唯一索引冲突与记录缺失时的 GORM 错误。
type fakeUserRepo struct {
	users  map[string]*model.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User)}
}

func (r *fakeUserRepo) Create(user *model.User) error {
	if _, exists := r.users[user.Username]; exists {
		return gorm.ErrDuplicatedKey
	}
	r.nextID++
	user.ID = r.nextID
	stored := *user
	r.users[user.Username] = &stored
	return nil
}

func (r *fakeUserRepo) FindByUsername(username string) (*model.User, error) {
	user, ok := r.users[username]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	found := *user
	return &found, nil
}

func (r *fakeUserRepo) FindByID(userID uint) (*model.User, error) {
	for _, user := range r.users {
		if user.ID == userID {
			found := *user
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func TestRegisterHashesPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	user, err := svc.Register("alice", "pw1")
	if err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	if user.ID == 0 {
		t.Error("Register() did not assign a user ID")
	}

	stored := repo.users["alice"]
	if stored.Password == "pw1" {
		t.Fatal("password stored as plaintext")
	}
	if !hash.CheckPasswordHash("pw1", stored.Password) {
		t.Error("stored hash does not verify against the original password")
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	if _, err := svc.Register("alice", "pw1"); err != nil {
		t.Fatalf("first Register() error: %v", err)
	}
	firstHash := repo.users["alice"].Password

	_, err := svc.Register("alice", "pw2")
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("second Register() error = %v, want ErrUsernameTaken", err)
	}

	// 冲突的注册不得影响已存储的哈希
	if repo.users["alice"].Password != firstHash {
		t.Error("stored hash changed after a conflicting registration")
	}
}

func TestAuthenticate(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)
	if _, err := svc.Register("alice", "pw1"); err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{name: "correct credentials", username: "alice", password: "pw1", wantErr: nil},
		{name: "wrong password", username: "alice", password: "pw2", wantErr: ErrInvalidCredentials},
		{name: "unknown user", username: "bob", password: "pw1", wantErr: ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := svc.Authenticate(tt.username, tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Authenticate() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil {
				if user == nil || user.Username != tt.username {
					t.Errorf("Authenticate() user = %+v, want username %q", user, tt.username)
				}
			} else if user != nil {
				t.Errorf("Authenticate() user = %+v, want nil on failure", user)
			}
		})
	}
}
