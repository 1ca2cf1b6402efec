package model

// 用户角色
const (
	RoleStudent = "student"
	RoleAlumnus = "alumnus"
	RoleAdmin   = "admin"
)

// 用户状态
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// User 结构体表示用户模型，是后端记录的客户端镜像
type User struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	Status         string `json:"status,omitempty"`
	About          string `json:"about,omitempty"`
	Major          string `json:"major,omitempty"`
	GraduationYear int    `json:"graduationYear,omitempty"`
}

// IsAdmin 判断用户是否为管理员
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// UserRef 是嵌在帖子、评论、活动中的用户摘要
type UserRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Role string `json:"role,omitempty"`
}

// UserPatch 表示对当前用户的部分更新，nil 字段保持不变
type UserPatch struct {
	Name           *string `json:"name,omitempty"`
	Email          *string `json:"email,omitempty"`
	About          *string `json:"about,omitempty"`
	Major          *string `json:"major,omitempty"`
	GraduationYear *int    `json:"graduationYear,omitempty"`
}

// ApplyTo 将非 nil 字段浅合并到用户对象上
func (p UserPatch) ApplyTo(u *User) {
	if u == nil {
		return
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.About != nil {
		u.About = *p.About
	}
	if p.Major != nil {
		u.Major = *p.Major
	}
	if p.GraduationYear != nil {
		u.GraduationYear = *p.GraduationYear
	}
}

// NewUser 是管理员添加用户时提交的数据
type NewUser struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=student alumnus admin"`
}
