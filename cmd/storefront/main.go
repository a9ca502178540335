// Command storefront is the terminal client for the MS TEX shop: browse the
// catalog, manage the cart, check out, review orders and (as admin) manage
// products and order statuses.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/padhusmiler/mstex/internal/api"
	"github.com/padhusmiler/mstex/internal/config"
	"github.com/padhusmiler/mstex/internal/domain"
	"github.com/padhusmiler/mstex/internal/logger"
	"github.com/padhusmiler/mstex/internal/session"
	"github.com/padhusmiler/mstex/internal/view"
)

const usage = `usage: storefront [-config path] <command> [args]

  register -email -name -password [-phone] [-address]
  login -email -password
  logout
  whoami
  profile -name [-email] [-phone] [-address]

  products [-search] [-category] [-size] [-color] [-price]
  product <id>
  add <product-id> [-qty] [-size] [-color]

  cart
  cart-update <line-index> <quantity>
  cart-remove <product-id>
  cart-clear
  checkout -address "..."
  orders

  admin-dashboard
  admin-orders [-status]
  admin-set-status <order-id> <status>
  admin-set-payment <order-id> <pending|completed>
  admin-products
  admin-add -name -price -category -sizes S,M -colors Black [-description] [-stock] [-images url,url]
  admin-update <product-id> (same flags as admin-add)
  admin-delete <product-id> [-yes]
  admin-upload <file>
`

type app struct {
	cfg    *config.Config
	client *api.Client
	sess   *session.Session
	log    *zap.Logger
}

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}
	log, flush := logger.New(logger.Options{Level: cfg.Log.Level, JSON: cfg.Log.JSON, File: cfg.Log.File})
	defer flush()

	client := api.New(cfg.Backend.BaseURL, cfg.Backend.RequestTimeout(), log)
	sess := session.New(client, session.NewFileTokenStore(cfg.Session.TokenFile), log)

	a := &app{cfg: cfg, client: client, sess: sess, log: log}
	ctx := context.Background()

	cmd, args := flag.Arg(0), flag.Args()[1:]

	// login and register start fresh; everything else restores the stored
	// session first.
	if cmd != "login" && cmd != "register" {
		if err := sess.Restore(ctx); err != nil {
			fmt.Fprintln(os.Stderr, "session expired, please log in again")
		}
	}

	if err := a.run(ctx, cmd, args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func (a *app) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "register":
		return a.register(ctx, args)
	case "login":
		return a.login(ctx, args)
	case "logout":
		if err := a.sess.Logout(); err != nil {
			return err
		}
		fmt.Println("logged out")
		return nil
	case "whoami":
		return a.whoami()
	case "profile":
		return a.profile(ctx, args)
	case "products":
		return a.products(ctx, args)
	case "product":
		return a.product(ctx, args)
	case "add":
		return a.addToCart(ctx, args)
	case "cart":
		return a.cart(ctx)
	case "cart-update":
		return a.cartUpdate(ctx, args)
	case "cart-remove":
		return a.cartRemove(ctx, args)
	case "cart-clear":
		return a.cartClear(ctx)
	case "checkout":
		return a.checkout(ctx, args)
	case "orders":
		return a.orders(ctx)
	case "admin-dashboard":
		return a.adminDashboard(ctx)
	case "admin-orders":
		return a.adminOrders(ctx, args)
	case "admin-set-status":
		return a.adminSetStatus(ctx, args)
	case "admin-set-payment":
		return a.adminSetPayment(ctx, args)
	case "admin-products":
		return a.adminProducts(ctx)
	case "admin-add":
		return a.adminSave(ctx, "", args)
	case "admin-update":
		if len(args) < 1 {
			return errors.New("admin-update needs a product id")
		}
		return a.adminSave(ctx, args[0], args[1:])
	case "admin-delete":
		return a.adminDelete(ctx, args)
	case "admin-upload":
		return a.adminUpload(ctx, args)
	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *app) register(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	email := fs.String("email", "", "email address")
	name := fs.String("name", "", "full name")
	password := fs.String("password", "", "password")
	phone := fs.String("phone", "", "phone number")
	address := fs.String("address", "", "shipping address")
	_ = fs.Parse(args)

	auth := view.NewAuth(a.client, a.sess, a.log)
	user, err := auth.Register(ctx, domain.Profile{
		Email: *email, Name: *name, Phone: *phone, Address: *address,
	}, *password)
	if err != nil {
		return err
	}
	fmt.Printf("welcome, %s\n", user.Name)
	return nil
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	_ = fs.Parse(args)

	auth := view.NewAuth(a.client, a.sess, a.log)
	user, err := auth.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	fmt.Printf("logged in as %s (%s)\n", user.Name, user.Role)
	return nil
}

func (a *app) whoami() error {
	u := a.sess.User()
	if u == nil {
		fmt.Println("not logged in")
		return nil
	}
	fmt.Printf("%s <%s> role=%s cart-items=%d\n", u.Name, u.Email, u.Role, a.sess.CartCount())
	if exp := a.sess.TokenExpiresAt(); !exp.IsZero() {
		fmt.Printf("token expires %s\n", exp.Format("2006-01-02 15:04"))
	}
	return nil
}

func (a *app) profile(ctx context.Context, args []string) error {
	current := a.sess.User()
	if current == nil {
		return session.ErrNotLoggedIn
	}
	fs := flag.NewFlagSet("profile", flag.ExitOnError)
	email := fs.String("email", current.Email, "email address")
	name := fs.String("name", current.Name, "full name")
	phone := fs.String("phone", current.Phone, "phone number")
	address := fs.String("address", current.Address, "shipping address")
	_ = fs.Parse(args)

	profile := view.NewProfile(a.client, a.sess, a.log)
	user, err := profile.Save(ctx, domain.Profile{
		Email: *email, Name: *name, Phone: *phone, Address: *address,
	})
	if err != nil {
		return err
	}
	fmt.Printf("profile updated for %s\n", user.Email)
	return nil
}

func (a *app) products(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("products", flag.ExitOnError)
	search := fs.String("search", "", "text search over name and description")
	category := fs.String("category", view.FilterAll, "men or women")
	size := fs.String("size", view.FilterAll, "size filter")
	color := fs.String("color", view.FilterAll, "color filter")
	price := fs.String("price", view.FilterAll, "price bracket, e.g. 20-30")
	_ = fs.Parse(args)

	catalog := view.NewCatalog(a.client, a.log)
	if err := catalog.Load(ctx); err != nil {
		return err
	}
	catalog.SetFilter(view.Filter{
		Search: *search, Category: *category, Size: *size, Color: *color, PriceRange: *price,
	})

	filtered := catalog.Filtered()
	fmt.Printf("showing %d of %d products\n", len(filtered), len(catalog.Products()))
	for _, p := range filtered {
		fmt.Printf("  %s  %-30s %-6s $%.2f  sizes=%s colors=%s\n",
			p.ID, p.Name, p.Category, p.Price,
			strings.Join(p.Sizes, ","), strings.Join(p.Colors, ","))
	}
	return nil
}

func (a *app) product(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.New("product needs an id")
	}
	detail := view.NewProductDetail(a.client, a.sess, a.log)
	if err := detail.Load(ctx, args[0]); err != nil {
		return err
	}
	p := detail.Product()
	fmt.Printf("%s\n%s\ncategory=%s price=$%.2f stock=%d\nsizes: %s\ncolors: %s\n",
		p.Name, p.Description, p.Category, p.Price, p.Stock,
		strings.Join(p.Sizes, ", "), strings.Join(p.Colors, ", "))
	for i, img := range p.Images {
		fmt.Printf("image[%d] %s\n", i, img.URL)
	}
	return nil
}

func (a *app) addToCart(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.New("add needs a product id")
	}
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	qty := fs.Int("qty", 1, "quantity")
	size := fs.String("size", "", "size (defaults to the product's first)")
	color := fs.String("color", "", "color (defaults to the product's first)")
	_ = fs.Parse(args[1:])

	detail := view.NewProductDetail(a.client, a.sess, a.log)
	if err := detail.Load(ctx, args[0]); err != nil {
		return err
	}
	detail.SetQuantity(*qty)
	if *size != "" {
		if err := detail.SelectSize(*size); err != nil {
			return err
		}
	}
	if *color != "" {
		if err := detail.SelectColor(*color); err != nil {
			return err
		}
	}
	if err := detail.AddToCart(ctx); err != nil {
		return err
	}
	fmt.Printf("added to cart (%d items now)\n", a.sess.CartCount())
	return nil
}

func (a *app) loadCart(ctx context.Context) (*view.Cart, error) {
	cart := view.NewCart(a.client, a.sess, a.log)
	if err := cart.Load(ctx); err != nil {
		return nil, err
	}
	return cart, nil
}

func (a *app) cart(ctx context.Context) error {
	cart, err := a.loadCart(ctx)
	if err != nil {
		return err
	}
	if cart.IsEmpty() {
		fmt.Println("your cart is empty")
		return nil
	}
	for i, item := range cart.Items() {
		fmt.Printf("  [%d] %s size=%s color=%s $%.2f x%d\n",
			i, item.ProductID, item.Size, item.Color, item.Price, item.Quantity)
	}
	fmt.Printf("total: $%s\n", cart.TotalString())
	return nil
}

func (a *app) cartUpdate(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.New("cart-update needs a line index and quantity")
	}
	idx, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("bad line index %q", args[0])
	}
	qty, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("bad quantity %q", args[1])
	}
	cart, err := a.loadCart(ctx)
	if err != nil {
		return err
	}
	if err := cart.UpdateQuantity(ctx, idx, qty); err != nil {
		return err
	}
	fmt.Printf("updated; total now $%s\n", cart.TotalString())
	return nil
}

func (a *app) cartRemove(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.New("cart-remove needs a product id")
	}
	cart, err := a.loadCart(ctx)
	if err != nil {
		return err
	}
	if err := cart.RemoveItem(ctx, args[0]); err != nil {
		return err
	}
	fmt.Println("item removed from cart")
	return nil
}

func (a *app) cartClear(ctx context.Context) error {
	cart, err := a.loadCart(ctx)
	if err != nil {
		return err
	}
	if err := cart.Clear(ctx); err != nil {
		return err
	}
	fmt.Println("cart cleared")
	return nil
}

func (a *app) checkout(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("checkout", flag.ExitOnError)
	address := fs.String("address", "", "shipping address (defaults to profile address)")
	_ = fs.Parse(args)

	co := view.NewCheckout(a.client, a.sess, a.cfg.Checkout.SettleDelay(), a.log)
	if err := co.Load(ctx); err != nil {
		if errors.Is(err, view.ErrEmptyCart) {
			fmt.Println("your cart is empty; add something first")
			return nil
		}
		return err
	}

	addr := *address
	if addr == "" {
		addr = co.DefaultAddress()
	}

	fmt.Printf("placing order for %d lines, total $%.2f\n", len(co.Items()), co.Total())
	order, err := co.PlaceOrder(ctx, addr)
	if err != nil {
		return err
	}
	fmt.Printf("order %s placed, status=%s payment=%s\n", order.ID, order.Status, order.PaymentStatus)
	return nil
}

func (a *app) orders(ctx context.Context) error {
	ov := view.NewOrders(a.client, a.sess, a.log)
	if err := ov.Load(ctx); err != nil {
		return err
	}
	printOrders(ov.Orders())
	return nil
}

func (a *app) adminDashboard(ctx context.Context) error {
	dash := view.NewAdminDashboard(a.client, a.sess, a.log)
	if err := dash.Load(ctx); err != nil {
		return err
	}
	stats := dash.Stats()
	fmt.Printf("products: %d\norders:   %d\nrevenue:  $%.2f\npending:  %d\n",
		stats.TotalProducts, stats.TotalOrders, stats.TotalRevenue, stats.PendingOrders)
	return nil
}

func (a *app) adminOrders(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("admin-orders", flag.ExitOnError)
	status := fs.String("status", view.FilterAll, "filter by fulfillment status")
	_ = fs.Parse(args)

	ao := view.NewAdminOrders(a.client, a.sess, a.log)
	if err := ao.Load(ctx); err != nil {
		return err
	}
	ao.SetStatusFilter(*status)
	printOrders(ao.Filtered())
	return nil
}

func printOrders(orders []domain.Order) {
	if len(orders) == 0 {
		fmt.Println("no orders")
		return
	}
	for _, o := range orders {
		badge := o.Status.Badge()
		fmt.Printf("order %s  %s  [%s] %s  payment=%s  $%.2f\n",
			o.ID, o.CreatedAt.Format("2006-01-02"), badge.Color, badge.Label,
			o.PaymentStatus.Badge().Label, o.TotalAmount)
		for _, item := range o.Items {
			fmt.Printf("    %s (%s, %s) x%d  $%.2f\n",
				item.ProductName, item.Size, item.Color, item.Quantity,
				item.Price*float64(item.Quantity))
		}
		fmt.Printf("    ship to: %s\n", o.ShippingAddress)
	}
}

func (a *app) adminSetStatus(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.New("admin-set-status needs an order id and a status")
	}
	ao := view.NewAdminOrders(a.client, a.sess, a.log)
	if err := ao.Load(ctx); err != nil {
		return err
	}
	if err := ao.SetStatus(ctx, args[0], domain.OrderStatus(args[1])); err != nil {
		return err
	}
	fmt.Println("order status updated")
	return nil
}

func (a *app) adminSetPayment(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.New("admin-set-payment needs an order id and a payment status")
	}
	ao := view.NewAdminOrders(a.client, a.sess, a.log)
	if err := ao.Load(ctx); err != nil {
		return err
	}
	if err := ao.SetPaymentStatus(ctx, args[0], domain.PaymentStatus(args[1])); err != nil {
		return err
	}
	fmt.Println("payment status updated")
	return nil
}

func (a *app) adminProducts(ctx context.Context) error {
	ap := view.NewAdminProducts(a.client, a.sess, a.log)
	if err := ap.Load(ctx); err != nil {
		return err
	}
	for _, p := range ap.Products() {
		fmt.Printf("  %s  %-30s %-6s $%.2f stock=%d images=%d\n",
			p.ID, p.Name, p.Category, p.Price, p.Stock, len(p.Images))
	}
	return nil
}

func (a *app) adminSave(ctx context.Context, productID string, args []string) error {
	fs := flag.NewFlagSet("admin-save", flag.ExitOnError)
	name := fs.String("name", "", "product name")
	description := fs.String("description", "", "product description")
	category := fs.String("category", domain.CategoryMen, "men or women")
	price := fs.String("price", "", "price")
	sizes := fs.String("sizes", "", "comma-separated sizes")
	colors := fs.String("colors", "", "comma-separated colors")
	stock := fs.String("stock", "100", "stock count")
	images := fs.String("images", "", "comma-separated image URLs")
	_ = fs.Parse(args)

	ap := view.NewAdminProducts(a.client, a.sess, a.log)
	if productID != "" {
		if err := ap.Load(ctx); err != nil {
			return err
		}
		found := false
		for _, p := range ap.Products() {
			if p.ID == productID {
				ap.Edit(p)
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("product %s not found", productID)
		}
	}

	form := ap.Form()
	if *name != "" {
		form.Name = *name
	}
	if *description != "" {
		form.Description = *description
	}
	form.Category = *category
	if *price != "" {
		form.Price = *price
	}
	form.Stock = *stock
	if *sizes != "" {
		form.Sizes = splitList(*sizes)
	}
	if *colors != "" {
		form.Colors = splitList(*colors)
	}
	if *images != "" {
		form.ImageURLs = splitList(*images)
	}

	if err := ap.Save(ctx); err != nil {
		return err
	}
	if productID != "" {
		fmt.Println("product updated")
	} else {
		fmt.Println("product created")
	}
	return nil
}

func (a *app) adminDelete(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.New("admin-delete needs a product id")
	}
	fs := flag.NewFlagSet("admin-delete", flag.ExitOnError)
	yes := fs.Bool("yes", false, "skip the confirmation prompt")
	_ = fs.Parse(args[1:])

	confirm := func() bool {
		if *yes {
			return true
		}
		fmt.Print("delete this product? [y/N] ")
		var answer string
		_, _ = fmt.Scanln(&answer)
		return strings.EqualFold(answer, "y") || strings.EqualFold(answer, "yes")
	}

	ap := view.NewAdminProducts(a.client, a.sess, a.log)
	if err := ap.Delete(ctx, args[0], confirm); err != nil {
		if errors.Is(err, view.ErrNotConfirmed) {
			fmt.Println("aborted")
			return nil
		}
		return err
	}
	fmt.Println("product deleted")
	return nil
}

func (a *app) adminUpload(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.New("admin-upload needs a file path")
	}
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	ap := view.NewAdminProducts(a.client, a.sess, a.log)
	url, err := ap.UploadImage(ctx, f.Name(), f)
	if err != nil {
		return err
	}
	fmt.Println("uploaded:", url)
	return nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
