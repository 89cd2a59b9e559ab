package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/mmcdole/barcart/internal/browse"
	"github.com/mmcdole/barcart/internal/domain"
	"github.com/mmcdole/barcart/internal/favorites"
)

// cli runs one plain-text subcommand against the catalog
type cli struct {
	out       io.Writer
	errOut    io.Writer
	catalog   domain.CatalogRepository
	favorites *favorites.Registry
	saved     bool // favorites survive the process
	opener    interface{ Open(url string) error }
	letter    string
	logger    *slog.Logger
}

func (c *cli) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: missing command", domain.ErrInvalidArgument)
	}

	cmd, rest := args[0], args[1:]
	c.logger.Debug("running command", "command", cmd, "args", rest)

	switch cmd {
	case "home":
		return c.home(ctx, rest)
	case "categories":
		return c.categories(ctx)
	case "filter":
		return c.filter(ctx, rest)
	case "show":
		return c.show(ctx, rest)
	case "favorites":
		return c.listFavorites(ctx)
	case "like":
		return c.like(rest, true)
	case "unlike":
		return c.like(rest, false)
	case "open":
		return c.open(ctx, rest)
	default:
		return fmt.Errorf("%w: unknown command %q", domain.ErrInvalidArgument, cmd)
	}
}

func (c *cli) home(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("home", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	pages := fs.Int("pages", 1, "number of pages to fetch")
	letter := fs.String("letter", c.letter, "first letter to browse")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err)
	}

	pager := browse.NewPager(c.catalog, *letter, c.logger)
	for i := 0; i < *pages; i++ {
		req, ok := pager.LoadMore()
		if !ok {
			break
		}
		if err := pager.Load(ctx, req); err != nil {
			return err
		}
	}

	c.printSummaries(pager.Items())
	return nil
}

func (c *cli) categories(ctx context.Context) error {
	b := browse.NewCategoryBrowser(c.catalog, c.logger)
	if err := b.LoadCategoriesSync(ctx); err != nil {
		return err
	}
	for _, cat := range b.Categories().Value {
		fmt.Fprintln(c.out, cat.Name)
	}
	return nil
}

func (c *cli) filter(ctx context.Context, args []string) error {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		return fmt.Errorf("%w: filter needs a category", domain.ErrInvalidArgument)
	}

	b := browse.NewCategoryBrowser(c.catalog, c.logger)
	if err := b.LoadCategoriesSync(ctx); err != nil {
		return err
	}
	cat, ok := b.Resolve(name)
	if !ok {
		return fmt.Errorf("%w: no category matches %q", domain.ErrNotFound, name)
	}
	if err := b.SelectSync(ctx, cat); err != nil {
		return err
	}

	c.printSummaries(b.Results().Value)
	return nil
}

func (c *cli) show(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: show needs one cocktail id", domain.ErrInvalidArgument)
	}

	loader := browse.NewDetailLoader(c.catalog, domain.CocktailID(args[0]))
	if err := loader.Load(ctx); err != nil {
		return err
	}

	d := loader.State().Value
	name := d.Name
	if c.favorites.Contains(d.ID) {
		name = "♥ " + name
	}
	fmt.Fprintf(c.out, "%s (#%s)\n", name, d.ID)
	if tags := d.Tags(); len(tags) > 0 {
		fmt.Fprintln(c.out, strings.Join(tags, " · "))
	}
	if len(d.Ingredients) > 0 {
		fmt.Fprintln(c.out, "\nIngredients:")
		for _, line := range d.Ingredients {
			fmt.Fprintf(c.out, "  %s\n", line)
		}
	}
	if d.Instructions != "" {
		fmt.Fprintf(c.out, "\nInstructions:\n%s\n", strings.TrimSpace(d.Instructions))
	}
	return nil
}

// listFavorites prints favorites in the order they were added, looking up names
func (c *cli) listFavorites(ctx context.Context) error {
	for _, id := range c.favorites.Snapshot() {
		d, err := c.catalog.LookupByID(ctx, id)
		switch {
		case err == nil:
			fmt.Fprintf(c.out, "%s\t%s\n", id, d.Name)
		case errors.Is(err, context.Canceled):
			return err
		default:
			c.logger.Warn("favorite lookup failed", "id", id, "error", err)
			fmt.Fprintf(c.out, "%s\t(%s)\n", id, domain.KindOf(err))
		}
	}
	return nil
}

func (c *cli) like(args []string, add bool) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: expected one cocktail id", domain.ErrInvalidArgument)
	}
	id := domain.CocktailID(args[0])
	if !c.saved {
		fmt.Fprintln(c.errOut, "note: favorites.dir is not set, this change lasts only for this run")
	}

	if add {
		if !c.favorites.Contains(id) {
			c.favorites.Toggle(id)
		}
		fmt.Fprintf(c.out, "♥ %s\n", id)
		return nil
	}

	c.favorites.Remove(id)
	fmt.Fprintf(c.out, "removed %s\n", id)
	return nil
}

func (c *cli) open(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: open needs one cocktail id", domain.ErrInvalidArgument)
	}

	d, err := c.catalog.LookupByID(ctx, domain.CocktailID(args[0]))
	if err != nil {
		return err
	}
	if d.ThumbURL == "" {
		return fmt.Errorf("%w: no image for %s", domain.ErrNotFound, d.Name)
	}
	if err := c.opener.Open(d.ThumbURL); err != nil {
		return err
	}
	fmt.Fprintln(c.out, d.ThumbURL)
	return nil
}

func (c *cli) printSummaries(items []domain.CocktailSummary) {
	for _, s := range items {
		fmt.Fprintf(c.out, "%s\t%s\n", s.ID, s.Name)
	}
}
