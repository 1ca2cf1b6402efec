package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"alumni-client/config"
	"alumni-client/internal/apiclient"
	"alumni-client/internal/common"
	"alumni-client/internal/model"
	"alumni-client/internal/service"
	"alumni-client/internal/session"
	"alumni-client/internal/store"
	"alumni-client/internal/util"
	"alumni-client/internal/view"

	"go.uber.org/zap"
)

// app 聚合 CLI 需要的全部依赖
type app struct {
	ctx     context.Context
	client  *apiclient.Client
	session *session.Store
	guard   *view.Guard

	auth     *service.AuthService
	events   *service.EventService
	posts    *service.PostService
	profile  *service.ProfileService
	admin    *service.AdminService
	search   *service.SearchService
	donation *service.DonationService
	college  *service.CollegeService
}

func main() {
	config.Init()
	util.InitLogger(config.AppConfig.LogLevel)
	defer util.Logger.Sync()

	tokens, err := store.NewFileTokenStore(config.AppConfig.TokenPath)
	if err != nil {
		util.Logger.Fatal("初始化令牌存储失败", zap.Error(err))
	}

	client := apiclient.New(config.AppConfig.APIBaseURL, config.AppConfig.RequestTimeout, tokens)

	a := &app{
		ctx:      context.Background(),
		client:   client,
		auth:     service.NewAuthService(client),
		events:   service.NewEventService(client),
		posts:    service.NewPostService(client),
		profile:  service.NewProfileService(client),
		admin:    service.NewAdminService(client),
		search:   service.NewSearchService(client),
		donation: service.NewDonationService(client),
		college:  service.NewCollegeService(client),
	}
	a.session = session.NewStore(a.auth, tokens)
	a.guard = view.NewGuard(a.session)

	// 401 响应清除本地会话，下一次受保护导航由守卫跳转登录
	client.SetUnauthorizedHook(a.session.HandleUnauthorized)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	// 登录之外的命令先尝试恢复会话
	cmd := os.Args[1]
	args := os.Args[2:]
	if cmd != "login" && cmd != "college-register" {
		a.session.Restore(a.ctx)
	}

	if err := a.run(cmd, args); err != nil {
		fmt.Fprintln(os.Stderr, "错误:", err)
		os.Exit(1)
	}
}

func (a *app) run(cmd string, args []string) error {
	switch cmd {
	case "login":
		return a.cmdLogin(args)
	case "logout":
		a.session.Logout(a.ctx)
		fmt.Println("已退出登录")
		return nil
	case "whoami":
		return a.cmdWhoami()
	case "feed":
		return a.cmdFeed(args)
	case "post":
		return a.cmdPost(args)
	case "like":
		return a.cmdLike(args)
	case "comment":
		return a.cmdComment(args)
	case "events":
		return a.cmdEvents(args)
	case "profile":
		return a.cmdProfile(args)
	case "follow":
		return a.cmdFollow(args)
	case "search":
		return a.cmdSearch(args)
	case "admin":
		return a.cmdAdmin(args)
	case "donate":
		return a.cmdDonate(args)
	case "college-register":
		return a.cmdCollegeRegister(args)
	default:
		usage()
		return fmt.Errorf("未知命令: %s", cmd)
	}
}

// requireRoute 按路由表的访问级别做门控，与页面端守卫同一套裁决
func (a *app) requireRoute(path string) error {
	res := a.guard.Resolve(path)
	switch res.Decision {
	case view.DecisionRender:
		return nil
	case view.DecisionRedirectLogin:
		return fmt.Errorf("请先登录（原路径 %s 已保留）", res.ReturnTo)
	case view.DecisionRedirectHome:
		return fmt.Errorf("没有访问权限")
	case view.DecisionNotFound:
		return fmt.Errorf("页面不存在")
	default:
		return fmt.Errorf("会话尚未就绪")
	}
}

func (a *app) cmdLogin(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("用法: login <email> <password>")
	}
	user, err := a.session.Login(a.ctx, args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Printf("登录成功: %s (%s)\n", user.Name, user.Role)
	return nil
}

func (a *app) cmdWhoami() error {
	snap := a.session.Snapshot()
	if !snap.IsAuthenticated {
		fmt.Println("未登录")
		return nil
	}
	fmt.Printf("#%d %s <%s> 角色=%s\n", snap.User.ID, snap.User.Name, snap.User.Email, snap.User.Role)
	return nil
}

func (a *app) cmdFeed(args []string) error {
	if err := a.requireRoute("/feed"); err != nil {
		return err
	}
	fs := flag.NewFlagSet("feed", flag.ContinueOnError)
	retries := fs.Int("retries", config.AppConfig.GetRetries, "幂等读取的重试次数")
	if err := fs.Parse(args); err != nil {
		return err
	}

	feed := view.NewFeedView(a.ctx, a.posts, a.session, config.AppConfig.PageSize)
	defer feed.Close()

	if err := common.WithRetry(feed.Refresh, *retries); err != nil {
		return err
	}
	for _, p := range feed.Posts() {
		liked := " "
		if p.LikedByCurrentUser {
			liked = "♥"
		}
		fmt.Printf("#%d [%s] %s — %s (赞 %d%s 评论 %d)\n",
			p.ID, p.CreatedAt.Format("2006-01-02 15:04"), p.Author.Name, p.Content,
			p.LikesCount, liked, p.CommentsCount)
	}
	return nil
}

func (a *app) cmdPost(args []string) error {
	if err := a.requireRoute("/feed"); err != nil {
		return err
	}
	fs := flag.NewFlagSet("post", flag.ContinueOnError)
	image := fs.String("image", "", "附带的图片文件路径")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("用法: post [--image 路径] <内容>")
	}

	feed := view.NewFeedView(a.ctx, a.posts, a.session, config.AppConfig.PageSize)
	defer feed.Close()

	created, err := feed.CreatePost(model.PostInput{Content: fs.Arg(0), ImagePath: *image})
	if err != nil {
		return err
	}
	fmt.Printf("已发布帖子 #%d\n", created.ID)
	return nil
}

func (a *app) cmdLike(args []string) error {
	if err := a.requireRoute("/feed"); err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("用法: like <帖子ID>")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("无效的帖子ID: %s", args[0])
	}

	feed := view.NewFeedView(a.ctx, a.posts, a.session, config.AppConfig.PageSize)
	defer feed.Close()
	if err := feed.Refresh(); err != nil {
		return err
	}
	return feed.ToggleLike(id)
}

func (a *app) cmdComment(args []string) error {
	if err := a.requireRoute("/feed"); err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("用法: comment <帖子ID> <内容>")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("无效的帖子ID: %s", args[0])
	}

	feed := view.NewFeedView(a.ctx, a.posts, a.session, config.AppConfig.PageSize)
	defer feed.Close()
	return feed.AddComment(id, args[1])
}

func (a *app) cmdEvents(args []string) error {
	if err := a.requireRoute("/events"); err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"list"}
	}

	events := view.NewEventsView(a.ctx, a.events, a.session)
	defer events.Close()

	switch args[0] {
	case "list":
		if err := events.Refresh(); err != nil {
			return err
		}
		for _, e := range events.Events() {
			fmt.Printf("#%d %s @ %s (%s) 参加 %d 人\n", e.ID, e.Title, e.Location, e.Date, len(e.Attendees))
		}
		return nil
	case "show":
		id, err := eventIDArg(args)
		if err != nil {
			return err
		}
		if err := events.Open(id); err != nil {
			return err
		}
		if events.NotFound() {
			fmt.Println("活动不存在，输入 events list 返回列表")
			return nil
		}
		e := events.Current()
		fmt.Printf("#%d %s\n时间: %s\n地点: %s\n发起人: %s\n%s\n", e.ID, e.Title, e.Date, e.Location, e.CreatedBy.Name, e.Description)
		return nil
	case "create", "edit":
		fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
		title := fs.String("title", "", "活动标题")
		description := fs.String("description", "", "活动描述")
		date := fs.String("date", "", "时间，格式 YYYY-MM-DDTHH:MM")
		location := fs.String("location", "", "地点")
		collegeID := fs.Int("college", 0, "院校ID，可选")
		image := fs.String("image", "", "海报图片路径，可选")
		id := fs.Int("id", 0, "要编辑的活动ID（仅 edit）")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}

		input := model.EventInput{
			Title:       *title,
			Description: *description,
			Date:        *date,
			Location:    *location,
			CollegeID:   *collegeID,
			ImagePath:   *image,
		}
		if args[0] == "create" {
			created, err := events.Create(input)
			if err != nil {
				return err
			}
			fmt.Printf("已创建活动 #%d\n", created.ID)
			return nil
		}
		updated, err := events.Update(*id, input)
		if err != nil {
			return err
		}
		fmt.Printf("已更新活动 #%d\n", updated.ID)
		return nil
	case "join", "leave":
		id, err := eventIDArg(args)
		if err != nil {
			return err
		}
		if err := events.Refresh(); err != nil {
			return err
		}
		return events.ToggleAttendance(id)
	case "delete":
		id, err := eventIDArg(args)
		if err != nil {
			return err
		}
		return events.Delete(id)
	default:
		return fmt.Errorf("用法: events [list|show|create|edit|join|leave|delete]")
	}
}

func eventIDArg(args []string) (int, error) {
	if len(args) < 2 {
		return 0, fmt.Errorf("缺少活动ID")
	}
	id, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, fmt.Errorf("无效的活动ID: %s", args[1])
	}
	return id, nil
}

func (a *app) cmdProfile(args []string) error {
	profile := view.NewProfileView(a.ctx, a.profile, a.session)
	defer profile.Close()

	if len(args) > 0 && args[0] == "edit" {
		if err := a.requireRoute("/profile/edit"); err != nil {
			return err
		}
		fs := flag.NewFlagSet("profile edit", flag.ContinueOnError)
		name := fs.String("name", "", "姓名")
		about := fs.String("about", "", "简介")
		major := fs.String("major", "", "专业")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}

		patch := model.UserPatch{}
		if *name != "" {
			patch.Name = name
		}
		if *about != "" {
			patch.About = about
		}
		if *major != "" {
			patch.Major = major
		}
		updated, err := profile.SubmitProfileEdit(patch)
		if err != nil {
			return err
		}
		fmt.Printf("资料已更新: %s\n", updated.Name)
		return nil
	}

	if len(args) != 1 {
		return fmt.Errorf("用法: profile <用户ID> 或 profile edit [flags]")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("无效的用户ID: %s", args[0])
	}
	if err := a.requireRoute(fmt.Sprintf("/users/%d", id)); err != nil {
		return err
	}

	if err := profile.Load(id); err != nil {
		return err
	}
	if profile.NotFound() {
		fmt.Println("用户不存在")
		return nil
	}
	u := profile.User()
	fmt.Printf("#%d %s <%s> 角色=%s\n", u.ID, u.Name, u.Email, u.Role)
	fmt.Printf("粉丝 %d 人，关注 %d 人\n", len(profile.Followers()), len(profile.Following()))
	return nil
}

func (a *app) cmdFollow(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("用法: follow <用户ID>")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("无效的用户ID: %s", args[0])
	}
	if err := a.requireRoute(fmt.Sprintf("/users/%d", id)); err != nil {
		return err
	}

	profile := view.NewProfileView(a.ctx, a.profile, a.session)
	defer profile.Close()
	if err := profile.Load(id); err != nil {
		return err
	}
	return profile.ToggleFollow()
}

func (a *app) cmdSearch(args []string) error {
	if err := a.requireRoute("/search"); err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("用法: search <关键字>")
	}

	search := view.NewSearchView(a.ctx, a.search)
	defer search.Close()
	if err := search.Search(args[0]); err != nil {
		return err
	}
	for _, u := range search.Results() {
		fmt.Printf("#%d %s <%s> %s\n", u.ID, u.Name, u.Email, u.Role)
	}
	return nil
}

func (a *app) cmdAdmin(args []string) error {
	if err := a.requireRoute("/admin/users"); err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"users"}
	}

	admin := view.NewAdminView(a.ctx, a.admin, a.session)
	defer admin.Close()

	switch args[0] {
	case "users":
		if err := admin.Refresh(); err != nil {
			return err
		}
		for _, u := range admin.Users() {
			fmt.Printf("#%d %s <%s> %s/%s\n", u.ID, u.Name, u.Email, u.Role, u.Status)
		}
		return nil
	case "add":
		fs := flag.NewFlagSet("admin add", flag.ContinueOnError)
		name := fs.String("name", "", "姓名")
		email := fs.String("email", "", "邮箱")
		password := fs.String("password", "", "初始口令")
		role := fs.String("role", model.RoleStudent, "角色")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		user, err := admin.AddUser(model.NewUser{Name: *name, Email: *email, Password: *password, Role: *role})
		if err != nil {
			return err
		}
		fmt.Printf("已添加用户 #%d\n", user.ID)
		return nil
	case "remove":
		if len(args) != 2 {
			return fmt.Errorf("用法: admin remove <用户ID>")
		}
		id, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("无效的用户ID: %s", args[1])
		}
		return admin.RemoveUser(id)
	case "status":
		if len(args) != 3 {
			return fmt.Errorf("用法: admin status <用户ID> <active|inactive>")
		}
		id, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("无效的用户ID: %s", args[1])
		}
		return admin.ChangeStatus(id, args[2])
	case "remove-event":
		if len(args) != 2 {
			return fmt.Errorf("用法: admin remove-event <活动ID>")
		}
		id, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("无效的活动ID: %s", args[1])
		}
		return admin.RemoveEvent(id)
	default:
		return fmt.Errorf("用法: admin [users|add|remove|status|remove-event]")
	}
}

func (a *app) cmdDonate(args []string) error {
	if err := a.requireRoute("/donate"); err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("用法: donate <金额> <card|upi|netbanking>")
	}
	amount, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("无效的金额: %s", args[0])
	}

	snap := a.session.Snapshot()
	donate := view.NewDonateView(a.ctx, a.donation)
	defer donate.Close()

	if err := donate.Submit(model.DonationRequest{
		Amount:        amount,
		PaymentMethod: args[1],
		UserID:        snap.User.ID,
	}); err != nil {
		return err
	}
	receipt := donate.Receipt()
	fmt.Printf("捐赠成功，交易号 %s，状态 %s\n", receipt.TransactionID, receipt.Status)
	return nil
}

func (a *app) cmdCollegeRegister(args []string) error {
	fs := flag.NewFlagSet("college-register", flag.ContinueOnError)
	name := fs.String("name", "", "院校名称")
	address := fs.String("address", "", "地址")
	person := fs.String("contact", "", "联系人")
	email := fs.String("email", "", "联系邮箱")
	phone := fs.String("phone", "", "联系电话")
	adminName := fs.String("admin-name", "", "管理员姓名")
	adminEmail := fs.String("admin-email", "", "管理员邮箱")
	adminPassword := fs.String("admin-password", "", "管理员口令")
	if err := fs.Parse(args); err != nil {
		return err
	}

	college := view.NewCollegeView(a.ctx, a.college)
	defer college.Close()

	if err := college.Submit(model.CollegeRegistration{
		CollegeName:   *name,
		Address:       *address,
		ContactPerson: *person,
		ContactEmail:  *email,
		ContactPhone:  *phone,
		AdminUser: model.NewUser{
			Name:     *adminName,
			Email:    *adminEmail,
			Password: *adminPassword,
			Role:     model.RoleAdmin,
		},
	}); err != nil {
		return err
	}
	fmt.Println(college.Confirmation().Message)
	return nil
}

func usage() {
	fmt.Fprintln(os.Stderr, `用法: alumni <命令> [参数]

命令:
  login <email> <password>   登录
  logout                     退出登录
  whoami                     查看当前用户
  feed [--retries n]         浏览信息流
  post [--image 路径] <内容>  发布帖子
  like <帖子ID>               点赞/取消点赞
  comment <帖子ID> <内容>     发表评论
  events [子命令]             活动管理
  profile <用户ID>            查看用户主页
  profile edit [flags]       编辑个人资料
  follow <用户ID>             关注/取消关注
  search <关键字>             搜索用户
  admin [子命令]              管理后台
  donate <金额> <方式>        捐赠
  college-register [flags]   院校注册`)
}
