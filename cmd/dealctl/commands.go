package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"

	"local-deals/internal/client/apiclient"
	"local-deals/internal/client/storefront"

	"github.com/google/uuid"
)

type command struct {
	usage string
	run   func(ctx context.Context, a *app, args []string) error
}

var commands = map[string]command{
	"signup":     {"signup -email E -password P -name N [-role customer|business]", cmdSignUp},
	"login":      {"login -email E -password P", cmdLogin},
	"logout":     {"logout", cmdLogout},
	"whoami":     {"whoami", cmdWhoAmI},
	"categories": {"categories", cmdCategories},
	"deals":      {"deals [-search S] [-category C,...] [-sort newest|trending|ending-soon|discount] [-min-discount N] [-page N]", cmdDeals},
	"trending":   {"trending [-limit N]", cmdTrending},
	"deal":       {"deal <deal-id>", cmdDeal},
	"cart":       {"cart", cmdCart},
	"add":        {"add <deal-id>", cmdAdd},
	"remove":     {"remove <cart-item-id>", cmdRemove},
	"qty":        {"qty <cart-item-id> <quantity>", cmdQuantity},
	"clear-cart": {"clear-cart", cmdClearCart},
	"wishlist":   {"wishlist", cmdWishlist},
	"save":       {"save <deal-id>", cmdSave},
	"unsave":     {"unsave <deal-id>", cmdUnsave},
	"claim":      {"claim <deal-id>", cmdClaim},
	"claims":     {"claims", cmdClaims},
	"redeem":     {"redeem <code>", cmdRedeem},
	"qr":         {"qr -out FILE <code>", cmdQR},
	"verify":     {"verify <deal-id>", cmdVerify},
	"rate":       {"rate -business ID -score 1-5 [-comment C]", cmdRate},
	"ratings":    {"ratings <business-id>", cmdRatings},
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "usage: dealctl [-config FILE] <command> [flags]")
	fmt.Fprintln(w)
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		fmt.Fprintln(w, "  "+commands[name].usage)
	}
}

func newFlags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	return fs
}

func oneID(args []string, what string) (uuid.UUID, error) {
	if len(args) != 1 {
		return uuid.Nil, fmt.Errorf("expected one %s", what)
	}
	id, err := uuid.Parse(args[0])
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s %q", what, args[0])
	}
	return id, nil
}

func table(w io.Writer, header string, rows func(tw io.Writer)) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, header)
	rows(tw)
	return tw.Flush()
}

// Account

func cmdSignUp(ctx context.Context, a *app, args []string) error {
	fs := newFlags("signup")
	email := fs.String("email", "", "Email address")
	password := fs.String("password", "", "Password, at least 6 characters")
	name := fs.String("name", "", "Display name")
	role := fs.String("role", "customer", "customer or business")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.session.SignUp(ctx, *email, *password, *name, *role); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Account created. Sign in with: dealctl login")
	return nil
}

func cmdLogin(ctx context.Context, a *app, args []string) error {
	fs := newFlags("login")
	email := fs.String("email", "", "Email address")
	password := fs.String("password", os.Getenv(envPrefix+"PASSWORD"), "Password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	u, err := a.session.SignIn(ctx, *email, *password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Signed in as %s (%s)\n", u.Email, u.Role)
	return nil
}

func cmdLogout(ctx context.Context, a *app, _ []string) error {
	if err := a.session.SignOut(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Signed out")
	return nil
}

func cmdWhoAmI(_ context.Context, a *app, _ []string) error {
	u := a.session.User()
	if u == nil {
		fmt.Fprintln(a.out, "Not signed in")
		return nil
	}
	fmt.Fprintf(a.out, "%s (%s)\n", u.Email, u.Role)
	if b := a.session.Business(); b != nil {
		fmt.Fprintf(a.out, "Business: %s [%s]\n", b.BusinessName, b.VerificationStatus)
	}
	return nil
}

// Deals

func cmdCategories(ctx context.Context, a *app, _ []string) error {
	cats, err := a.sf.ListCategories(ctx)
	if err != nil {
		return err
	}
	return table(a.out, "SLUG\tNAME\tID", func(tw io.Writer) {
		for _, c := range cats {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", c.Slug, c.Name, c.ID)
		}
	})
}

func printDeals(w io.Writer, deals []apiclient.Deal) error {
	return table(w, "ID\tTITLE\tDISCOUNT\tBUSINESS\tEXPIRES\tLEFT", func(tw io.Writer) {
		for _, d := range deals {
			left := "-"
			switch {
			case d.SoldOut:
				left = "sold out"
			case d.Remaining != nil:
				left = strconv.Itoa(*d.Remaining)
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", d.ID, d.Title, d.DiscountValue, d.BusinessName, d.ExpiryText, left)
		}
	})
}

func cmdDeals(ctx context.Context, a *app, args []string) error {
	fs := newFlags("deals")
	search := fs.String("search", "", "Match title or description")
	categories := fs.String("category", "", "Comma-separated category slugs or ids")
	sortBy := fs.String("sort", "trending", "trending, newest, ending-soon or discount")
	status := fs.String("status", "", "Deal status, active by default")
	minDiscount := fs.Float64("min-discount", 0, "Minimum discount: 0, 10, 25, 50 or 75")
	page := fs.Int("page", 1, "Page of "+strconv.Itoa(storefront.PageSize))
	if err := fs.Parse(args); err != nil {
		return err
	}

	deals, err := a.sf.ListDeals(ctx, storefront.DealFilters{Search: *search, SortBy: *sortBy, Status: *status})
	if err != nil {
		return err
	}
	b := storefront.NewBrowser()
	b.SetDeals(deals)
	for _, c := range strings.Split(*categories, ",") {
		if c = strings.TrimSpace(c); c != "" {
			b.ToggleCategory(c)
		}
	}
	if err := b.SetMinDiscount(*minDiscount); err != nil {
		return err
	}
	b.SetPage(*page)

	if err := printDeals(a.out, b.PageItems()); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "page %d/%d, %d deals\n", b.Page(), b.PageCount(), b.Total())
	return nil
}

func cmdTrending(ctx context.Context, a *app, args []string) error {
	fs := newFlags("trending")
	limit := fs.Int("limit", storefront.DefaultTrendingLimit, "How many deals")
	if err := fs.Parse(args); err != nil {
		return err
	}
	deals, err := a.sf.ListTrending(ctx, *limit)
	if err != nil {
		return err
	}
	return printDeals(a.out, deals)
}

func cmdDeal(ctx context.Context, a *app, args []string) error {
	id, err := oneID(args, "deal id")
	if err != nil {
		return err
	}
	d, err := a.sf.GetDeal(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s\n%s\n\n%s off at %s\n%s\n", d.Title, d.Description, d.DiscountValue, d.BusinessName, d.ExpiryText)
	if d.TermsConditions != nil {
		fmt.Fprintf(a.out, "Terms: %s\n", *d.TermsConditions)
	}
	if v, err := a.sf.ListVerifications(ctx, id); err == nil {
		fmt.Fprintf(a.out, "Verified by %d shoppers\n", v.Count)
	}
	return nil
}

// Cart and wishlist

func cmdCart(ctx context.Context, a *app, _ []string) error {
	if !a.session.IsAuthenticated() {
		return apiclient.ErrUnauthenticated
	}
	items, err := a.sf.GetCart(ctx)
	if err != nil {
		return err
	}
	return table(a.out, "ITEM\tDEAL\tQTY", func(tw io.Writer) {
		for _, it := range items {
			title := it.DealID.String()
			if it.Deal != nil {
				title = it.Deal.Title
			}
			fmt.Fprintf(tw, "%s\t%s\t%d\n", it.ID, title, it.Quantity)
		}
	})
}

func cmdAdd(ctx context.Context, a *app, args []string) error {
	id, err := oneID(args, "deal id")
	if err != nil {
		return err
	}
	return a.sf.AddToCart(ctx, id)
}

func cmdRemove(ctx context.Context, a *app, args []string) error {
	id, err := oneID(args, "cart item id")
	if err != nil {
		return err
	}
	return a.sf.RemoveFromCart(ctx, id)
}

func cmdQuantity(ctx context.Context, a *app, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("expected a cart item id and a quantity")
	}
	id, err := oneID(args[:1], "cart item id")
	if err != nil {
		return err
	}
	qty, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid quantity %q", args[1])
	}
	return a.sf.UpdateQuantity(ctx, id, qty)
}

func cmdClearCart(ctx context.Context, a *app, _ []string) error {
	return a.sf.ClearCart(ctx)
}

func cmdWishlist(ctx context.Context, a *app, _ []string) error {
	if !a.session.IsAuthenticated() {
		return apiclient.ErrUnauthenticated
	}
	items, err := a.sf.GetWishlist(ctx)
	if err != nil {
		return err
	}
	return table(a.out, "DEAL\tTITLE", func(tw io.Writer) {
		for _, it := range items {
			title := ""
			if it.Deal != nil {
				title = it.Deal.Title
			}
			fmt.Fprintf(tw, "%s\t%s\n", it.DealID, title)
		}
	})
}

func cmdSave(ctx context.Context, a *app, args []string) error {
	id, err := oneID(args, "deal id")
	if err != nil {
		return err
	}
	return a.sf.AddToWishlist(ctx, id)
}

func cmdUnsave(ctx context.Context, a *app, args []string) error {
	id, err := oneID(args, "deal id")
	if err != nil {
		return err
	}
	return a.sf.RemoveFromWishlist(ctx, id)
}

// Claims

func cmdClaim(ctx context.Context, a *app, args []string) error {
	id, err := oneID(args, "deal id")
	if err != nil {
		return err
	}
	c, err := a.sf.ClaimDeal(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Claimed %s. Show this code at the counter: %s\n", c.DealTitle, c.Code)
	return nil
}

func cmdClaims(ctx context.Context, a *app, _ []string) error {
	if !a.session.IsAuthenticated() {
		return apiclient.ErrUnauthenticated
	}
	claims, err := a.sf.ListMyClaims(ctx)
	if err != nil {
		return err
	}
	return table(a.out, "CODE\tDEAL\tBUSINESS\tSTATUS", func(tw io.Writer) {
		for _, c := range claims {
			status := c.ExpiryText
			if c.IsRedeemed {
				status = "redeemed"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.Code, c.DealTitle, c.BusinessName, status)
		}
	})
}

func cmdRedeem(ctx context.Context, a *app, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("expected one code")
	}
	r, err := a.sf.RedeemByCode(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Redeemed %s at %s\n", r.Code, r.RedeemedAt.Format("2006-01-02 15:04"))
	return nil
}

func cmdQR(_ context.Context, a *app, args []string) error {
	fs := newFlags("qr")
	out := fs.String("out", "claim.png", "PNG file to write")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("expected one code")
	}
	png, err := a.sf.ClaimQR(fs.Arg(0))
	if err != nil {
		return err
	}
	if err := os.WriteFile(*out, png, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Wrote %s\n", *out)
	return nil
}

func cmdVerify(ctx context.Context, a *app, args []string) error {
	id, err := oneID(args, "deal id")
	if err != nil {
		return err
	}
	return a.sf.VerifyDeal(ctx, id)
}

// Ratings

func cmdRate(ctx context.Context, a *app, args []string) error {
	fs := newFlags("rate")
	business := fs.String("business", "", "Business id")
	score := fs.Int("score", 0, "Score from 1 to 5")
	comment := fs.String("comment", "", "Optional comment")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := oneID([]string{*business}, "business id")
	if err != nil {
		return err
	}
	return a.sf.SubmitRating(ctx, id, *score, *comment)
}

func cmdRatings(ctx context.Context, a *app, args []string) error {
	id, err := oneID(args, "business id")
	if err != nil {
		return err
	}
	sum, err := a.sf.RatingSummary(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%.1f average from %d ratings\n", sum.Average, sum.Count)
	ratings, err := a.sf.ListRatings(ctx, id)
	if err != nil {
		return err
	}
	return table(a.out, "SCORE\tBY\tCOMMENT", func(tw io.Writer) {
		for _, r := range ratings {
			comment := ""
			if r.Comment != nil {
				comment = *r.Comment
			}
			fmt.Fprintf(tw, "%d\t%s\t%s\n", r.Score, r.UserName, comment)
		}
	})
}
