package view

import "strings"

// Access 表示路由子树的访问级别
type Access int

const (
	AccessPublic Access = iota
	AccessAuthenticated
	AccessAdmin
)

// Route 描述一个页面路由
type Route struct {
	Pattern string // 形如 "/events/:id"
	Access  Access
}

// Routes 是应用的路由表
var Routes = []Route{
	{Pattern: "/login", Access: AccessPublic},
	{Pattern: "/college/register", Access: AccessPublic},
	{Pattern: "/", Access: AccessAuthenticated},
	{Pattern: "/feed", Access: AccessAuthenticated},
	{Pattern: "/events", Access: AccessAuthenticated},
	{Pattern: "/events/new", Access: AccessAuthenticated},
	{Pattern: "/events/:id", Access: AccessAuthenticated},
	{Pattern: "/events/:id/edit", Access: AccessAuthenticated},
	{Pattern: "/users/:id", Access: AccessAuthenticated},
	{Pattern: "/profile/edit", Access: AccessAuthenticated},
	{Pattern: "/search", Access: AccessAuthenticated},
	{Pattern: "/donate", Access: AccessAuthenticated},
	{Pattern: "/admin", Access: AccessAdmin},
	{Pattern: "/admin/users", Access: AccessAdmin},
	{Pattern: "/admin/events", Access: AccessAdmin},
}

// Match 在路由表中查找路径，:段 匹配任意非空片段
func Match(path string) (Route, bool) {
	segments := splitPath(path)
	for _, route := range Routes {
		if matchPattern(splitPath(route.Pattern), segments) {
			return route, true
		}
	}
	return Route{}, false
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

func matchPattern(pattern, segments []string) bool {
	if len(pattern) != len(segments) {
		return false
	}
	for i, part := range pattern {
		if strings.HasPrefix(part, ":") {
			if segments[i] == "" {
				return false
			}
			continue
		}
		if part != segments[i] {
			return false
		}
	}
	return true
}
