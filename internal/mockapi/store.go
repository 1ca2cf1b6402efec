package mockapi

import (
	"sort"
	"strings"
	"sync"
	"time"

	"alumni-client/internal/model"

	"golang.org/x/crypto/bcrypt"
)

// userRecord 在用户模型之外保存口令哈希，哈希绝不出现在响应中
type userRecord struct {
	model.User
	PasswordHash string
}

// Store 是开发桩后端的内存数据层
type Store struct {
	mu       sync.Mutex
	users    map[int]*userRecord
	events   map[int]*model.Event
	posts    map[int]*model.Post
	comments map[int]*model.Comment
	likes    map[int]map[int]bool // postID -> userID -> liked
	follows  map[int]map[int]bool // followerID -> followeeID -> following
	nextID   int
}

func NewStore() *Store {
	s := &Store{
		users:    make(map[int]*userRecord),
		events:   make(map[int]*model.Event),
		posts:    make(map[int]*model.Post),
		comments: make(map[int]*model.Comment),
		likes:    make(map[int]map[int]bool),
		follows:  make(map[int]map[int]bool),
		nextID:   0,
	}
	s.seed()
	return s
}

// seed 预置一个管理员和一个普通用户，口令均为 password
func (s *Store) seed() {
	hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	s.addUser(&userRecord{
		User: model.User{
			Name:   "Demo User",
			Email:  "user@example.com",
			Role:   model.RoleStudent,
			Status: model.StatusActive,
		},
		PasswordHash: string(hash),
	})
	s.addUser(&userRecord{
		User: model.User{
			Name:   "Demo Admin",
			Email:  "admin@example.com",
			Role:   model.RoleAdmin,
			Status: model.StatusActive,
		},
		PasswordHash: string(hash),
	})
}

func (s *Store) nextIDLocked() int {
	s.nextID++
	return s.nextID
}

func (s *Store) addUser(rec *userRecord) *userRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec.ID = s.nextIDLocked()
	s.users[rec.ID] = rec
	return rec
}

// FindUserByEmail 按邮箱查找用户并校验口令
func (s *Store) Authenticate(email, password string) (*model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.users {
		if rec.Email == email {
			if bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(password)) != nil {
				return nil, false
			}
			user := rec.User
			return &user, true
		}
	}
	return nil, false
}

func (s *Store) GetUser(id int) (*model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.users[id]
	if !ok {
		return nil, false
	}
	user := rec.User
	return &user, true
}

func (s *Store) UpdateUser(id int, patch model.UserPatch) (*model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.users[id]
	if !ok {
		return nil, false
	}
	patch.ApplyTo(&rec.User)
	user := rec.User
	return &user, true
}

func (s *Store) CreateUser(input model.NewUser) *model.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	rec := s.addUser(&userRecord{
		User: model.User{
			Name:   input.Name,
			Email:  input.Email,
			Role:   input.Role,
			Status: model.StatusActive,
		},
		PasswordHash: string(hash),
	})
	user := rec.User
	return &user
}

func (s *Store) DeleteUser(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return false
	}
	delete(s.users, id)
	return true
}

func (s *Store) SetUserStatus(id int, status string) (*model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.users[id]
	if !ok {
		return nil, false
	}
	rec.Status = status
	user := rec.User
	return &user, true
}

func (s *Store) ListUsers() []*model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.User, 0, len(s.users))
	for _, rec := range s.users {
		user := rec.User
		out = append(out, &user)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) SearchUsers(query string) []*model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.User, 0)
	for _, rec := range s.users {
		if containsFold(rec.Name, query) || containsFold(rec.Email, query) {
			user := rec.User
			out = append(out, &user)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// --- 活动 ---

func (s *Store) CreateEvent(event *model.Event) *model.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	event.ID = s.nextIDLocked()
	event.CreatedAt = time.Now()
	s.events[event.ID] = event
	return event
}

func (s *Store) GetEvent(id int) (*model.Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	event, ok := s.events[id]
	return event, ok
}

func (s *Store) UpdateEvent(id int, updated *model.Event) (*model.Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	event, ok := s.events[id]
	if !ok {
		return nil, false
	}
	event.Title = updated.Title
	event.Description = updated.Description
	event.Date = updated.Date
	event.Location = updated.Location
	if updated.ImageURL != "" {
		event.ImageURL = updated.ImageURL
	}
	return event, true
}

func (s *Store) DeleteEvent(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[id]; !ok {
		return false
	}
	delete(s.events, id)
	return true
}

func (s *Store) ListEvents() []*model.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.Event, 0, len(s.events))
	for _, event := range s.events {
		out = append(out, event)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) JoinEvent(eventID, userID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	event, ok := s.events[eventID]
	if !ok {
		return false
	}
	rec, ok := s.users[userID]
	if !ok {
		return false
	}
	if !event.IsAttending(userID) {
		event.Attendees = append(event.Attendees, rec.User)
	}
	return true
}

func (s *Store) LeaveEvent(eventID, userID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	event, ok := s.events[eventID]
	if !ok {
		return false
	}
	kept := event.Attendees[:0]
	for _, u := range event.Attendees {
		if u.ID != userID {
			kept = append(kept, u)
		}
	}
	event.Attendees = kept
	return true
}

// --- 帖子与评论 ---

func (s *Store) CreatePost(post *model.Post) *model.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	post.ID = s.nextIDLocked()
	post.CreatedAt = time.Now()
	s.posts[post.ID] = post
	return post
}

func (s *Store) GetPost(id int) (*model.Post, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	post, ok := s.posts[id]
	return post, ok
}

func (s *Store) UpdatePost(id int, content, imageURL string) (*model.Post, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	post, ok := s.posts[id]
	if !ok {
		return nil, false
	}
	post.Content = content
	if imageURL != "" {
		post.ImageURL = imageURL
	}
	return post, true
}

func (s *Store) DeletePost(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[id]; !ok {
		return false
	}
	delete(s.posts, id)
	delete(s.likes, id)
	for cid, c := range s.comments {
		if c.PostID == id {
			delete(s.comments, cid)
		}
	}
	return true
}

// ListPosts 返回一页帖子，按创建时间倒序，计数按请求用户视角填充
func (s *Store) ListPosts(page, size, viewerID int) model.Page[model.Post] {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := make([]*model.Post, 0, len(s.posts))
	for _, post := range s.posts {
		all = append(all, post)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	start := page * size
	if start > len(all) {
		start = len(all)
	}
	end := start + size
	if end > len(all) {
		end = len(all)
	}

	content := make([]model.Post, 0, end-start)
	for _, post := range all[start:end] {
		view := *post
		view.LikesCount = len(s.likes[post.ID])
		view.LikedByCurrentUser = s.likes[post.ID][viewerID]
		view.CommentsCount = s.commentCountLocked(post.ID)
		content = append(content, view)
	}

	totalPages := (len(all) + size - 1) / size
	return model.Page[model.Post]{
		Content:       content,
		TotalPages:    totalPages,
		TotalElements: len(all),
		Number:        page,
		Size:          size,
		Last:          end >= len(all),
	}
}

func (s *Store) commentCountLocked(postID int) int {
	count := 0
	for _, c := range s.comments {
		if c.PostID == postID {
			count++
		}
	}
	return count
}

func (s *Store) LikePost(postID, userID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[postID]; !ok {
		return false
	}
	if s.likes[postID] == nil {
		s.likes[postID] = make(map[int]bool)
	}
	s.likes[postID][userID] = true
	return true
}

func (s *Store) UnlikePost(postID, userID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[postID]; !ok {
		return false
	}
	delete(s.likes[postID], userID)
	return true
}

func (s *Store) AddComment(comment *model.Comment) *model.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()
	comment.ID = s.nextIDLocked()
	comment.CreatedAt = time.Now()
	s.comments[comment.ID] = comment
	return comment
}

func (s *Store) ListComments(postID int) []*model.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.Comment, 0)
	for _, c := range s.comments {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) DeleteComment(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.comments[id]; !ok {
		return false
	}
	delete(s.comments, id)
	return true
}

// --- 关注关系 ---

func (s *Store) Follow(followerID, followeeID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[followeeID]; !ok {
		return false
	}
	if s.follows[followerID] == nil {
		s.follows[followerID] = make(map[int]bool)
	}
	s.follows[followerID][followeeID] = true
	return true
}

func (s *Store) Unfollow(followerID, followeeID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.follows[followerID], followeeID)
	return true
}

func (s *Store) FollowersOf(userID int) []*model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.User, 0)
	for followerID, targets := range s.follows {
		if targets[userID] {
			if rec, ok := s.users[followerID]; ok {
				user := rec.User
				out = append(out, &user)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) FollowingOf(userID int) []*model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.User, 0)
	for followeeID := range s.follows[userID] {
		if rec, ok := s.users[followeeID]; ok {
			user := rec.User
			out = append(out, &user)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func containsFold(s, substr string) bool {
	return substr != "" && strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
