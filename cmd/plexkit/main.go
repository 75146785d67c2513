package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/mcrews/plexkit/internal/collection"
	"github.com/mcrews/plexkit/internal/config"
	"github.com/mcrews/plexkit/internal/domain"
	"github.com/mcrews/plexkit/internal/library"
	"github.com/mcrews/plexkit/internal/log"
	"github.com/mcrews/plexkit/internal/playqueue"
	"github.com/mcrews/plexkit/internal/plex"
	"github.com/mcrews/plexkit/internal/search"
	"github.com/mcrews/plexkit/internal/store"
	syncjob "github.com/mcrews/plexkit/internal/sync"
)

// Version is set at build time via -ldflags
var Version = "dev"

const usage = `plexkit - manage media server collections

Usage:
  plexkit <command> [flags]

Commands:
  list            list collections in a section
  find            fuzzy-find collections by title
  show            show one collection
  items           list a collection's members
  create          create a regular collection
  create-smart    create a smart collection
  add             add items to a regular collection
  remove          remove items from a regular collection
  update-filters  replace a smart collection's filter query
  mode            update the collection display mode
  sort            update the collection sort order
  edit            edit collection metadata
  delete          delete a collection
  playqueue       create a play queue from a collection
  sync            register a collection sync job
`

func main() {
	var showVersion bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if showVersion {
		fmt.Printf("plexkit %s\n", Version)
		return
	}

	if err := run(flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("no command given")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := log.Setup(cfg.Logging.File, cfg.Logging.Level)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting plexkit", "version", Version, "command", args[0])

	if !cfg.IsConfigured() {
		if err := runSetupFlow(cfg); err != nil {
			return err
		}
	}

	ctx := context.Background()

	srv := plex.NewClient(cfg.Server.URL, cfg.Server.Token, logger)

	// Identity is stable per server, cache it between invocations
	cache, err := store.Open(config.DefaultCachePath(), cfg.Server.URL)
	if err != nil {
		logger.Warn("cache unavailable", "error", err)
		cache, _ = store.Open("", "")
	}
	defer cache.Close()

	if id, ok := cache.GetIdentity(); ok {
		srv.SetIdentity(id)
	} else {
		if err := srv.FetchIdentity(ctx); err != nil {
			return fmt.Errorf("failed to fetch server identity: %w", err)
		}
		if err := cache.SaveIdentity(srv.MachineIdentifier()); err != nil {
			logger.Warn("failed to cache identity", "error", err)
		}
	}

	switch args[0] {
	case "list":
		return cmdList(ctx, srv, cache, args[1:])
	case "find":
		return cmdFind(ctx, srv, cache, args[1:])
	case "show":
		return cmdShow(ctx, srv, args[1:])
	case "items":
		return cmdItems(ctx, srv, args[1:])
	case "create":
		return cmdCreate(ctx, srv, args[1:])
	case "create-smart":
		return cmdCreateSmart(ctx, srv, args[1:])
	case "add":
		return cmdAdd(ctx, srv, args[1:])
	case "remove":
		return cmdRemove(ctx, srv, args[1:])
	case "update-filters":
		return cmdUpdateFilters(ctx, srv, args[1:])
	case "mode":
		return cmdMode(ctx, srv, args[1:])
	case "sort":
		return cmdSort(ctx, srv, args[1:])
	case "edit":
		return cmdEdit(ctx, srv, args[1:])
	case "delete":
		return cmdDelete(ctx, srv, args[1:])
	case "playqueue":
		return cmdPlayQueue(ctx, srv, args[1:])
	case "sync":
		return cmdSync(ctx, srv, cfg, args[1:])
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

// runSetupFlow prompts for server URL and token on first use
func runSetupFlow(cfg *config.Config) error {
	fmt.Println()
	fmt.Println("Welcome to plexkit!")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)
	fmt.Print("Enter your server URL (e.g., http://192.168.1.100:32400): ")
	input, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	cfg.Server.URL = strings.TrimRight(strings.TrimSpace(input), "/")

	fmt.Print("Enter your server token: ")
	tokenBytes, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("failed to read token: %w", err)
	}
	cfg.Server.Token = strings.TrimSpace(string(tokenBytes))

	if !cfg.IsConfigured() {
		return fmt.Errorf("server URL and token are required")
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	fmt.Println("Configuration saved.")
	fmt.Println()
	return nil
}

// resolveSection resolves a section by title, preferring the cached directory
func resolveSection(ctx context.Context, srv *plex.Client, cache *store.Store, title string) (library.Section, error) {
	if sections, ok := cache.GetSections(); ok {
		for _, s := range sections {
			if strings.EqualFold(s.Title, title) {
				return s, nil
			}
		}
	}
	section, err := library.Resolve(ctx, srv, title)
	if err != nil {
		return library.Section{}, err
	}
	if sections, err := library.Sections(ctx, srv); err == nil {
		cache.SaveSections(sections)
	}
	return section, nil
}

func cmdList(ctx context.Context, srv *plex.Client, cache *store.Store, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	sectionTitle := fs.String("section", "", "library section title")
	fs.Parse(args)
	if *sectionTitle == "" {
		return fmt.Errorf("-section is required")
	}

	section, err := resolveSection(ctx, srv, cache, *sectionTitle)
	if err != nil {
		return err
	}
	collections, err := collection.List(ctx, srv, section)
	if err != nil {
		return err
	}
	for _, c := range collections {
		kind := "regular"
		if c.Smart {
			kind = "smart"
		}
		fmt.Printf("%d\t%s\t%s\t%s\t%d items\n", c.RatingKey, c.Title, c.Subtype, kind, c.ChildCount)
	}
	return nil
}

func cmdFind(ctx context.Context, srv *plex.Client, cache *store.Store, args []string) error {
	fs := flag.NewFlagSet("find", flag.ExitOnError)
	sectionTitle := fs.String("section", "", "library section title")
	fs.Parse(args)
	if *sectionTitle == "" || fs.NArg() == 0 {
		return fmt.Errorf("usage: find -section <title> <query>")
	}

	section, err := resolveSection(ctx, srv, cache, *sectionTitle)
	if err != nil {
		return err
	}
	collections, err := collection.List(ctx, srv, section)
	if err != nil {
		return err
	}
	for _, m := range search.Collections(strings.Join(fs.Args(), " "), collections) {
		fmt.Printf("%d\t%s\n", m.Collection.RatingKey, m.Collection.Title)
	}
	return nil
}

func fetchByID(ctx context.Context, srv *plex.Client, args []string, fs *flag.FlagSet) (*collection.Collection, error) {
	id := fs.Int("id", 0, "collection rating key")
	fs.Parse(args)
	if *id == 0 {
		return nil, fmt.Errorf("-id is required")
	}
	return collection.Fetch(ctx, srv, *id)
}

func cmdShow(ctx context.Context, srv *plex.Client, args []string) error {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	c, err := fetchByID(ctx, srv, args, fs)
	if err != nil {
		return err
	}
	kind := "regular"
	if c.Smart {
		kind = "smart"
	}
	fmt.Printf("Title:    %s\n", c.Title)
	fmt.Printf("Key:      %s (ratingKey %d)\n", c.Key, c.RatingKey)
	fmt.Printf("Kind:     %s %s\n", kind, c.Subtype)
	fmt.Printf("Section:  %s\n", c.LibrarySectionTitle)
	fmt.Printf("Items:    %d\n", c.ChildCount)
	if c.Summary != "" {
		fmt.Printf("Summary:  %s\n", c.Summary)
	}
	if c.Smart && c.Content != "" {
		fmt.Printf("Filter:   %s\n", c.Content)
	}
	return nil
}

func cmdItems(ctx context.Context, srv *plex.Client, args []string) error {
	fs := flag.NewFlagSet("items", flag.ExitOnError)
	c, err := fetchByID(ctx, srv, args, fs)
	if err != nil {
		return err
	}
	items, err := c.Items(ctx)
	if err != nil {
		return err
	}
	for _, item := range items {
		fmt.Printf("%d\t%s\t%s\n", item.RatingKey, item.Title, item.Type)
	}
	return nil
}

// loadItems fetches full item records for a comma-separated ratingKey list,
// so membership mutations can validate item types before sending anything
func loadItems(ctx context.Context, srv *plex.Client, ids string) ([]domain.Item, error) {
	if strings.TrimSpace(ids) == "" {
		return nil, nil
	}
	keys := make([]string, 0)
	for _, p := range strings.Split(ids, ",") {
		p = strings.TrimSpace(p)
		if _, err := strconv.Atoi(p); err != nil {
			return nil, fmt.Errorf("invalid item id %q", p)
		}
		keys = append(keys, p)
	}
	container, err := srv.Get(ctx, "/library/metadata/"+strings.Join(keys, ","), nil)
	if err != nil {
		return nil, err
	}
	if len(container.Metadata) != len(keys) {
		return nil, fmt.Errorf("found %d of %d requested items: %w",
			len(container.Metadata), len(keys), domain.ErrNotFound)
	}
	return plex.MapItems(container.Metadata), nil
}

func cmdCreate(ctx context.Context, srv *plex.Client, args []string) error {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	sectionTitle := fs.String("section", "", "library section title")
	title := fs.String("title", "", "collection title")
	itemIDs := fs.String("items", "", "comma-separated item rating keys")
	fs.Parse(args)
	if *sectionTitle == "" || *title == "" {
		return fmt.Errorf("-section and -title are required")
	}

	section, err := library.Resolve(ctx, srv, *sectionTitle)
	if err != nil {
		return err
	}
	items, err := loadItems(ctx, srv, *itemIDs)
	if err != nil {
		return err
	}
	c, err := collection.Create(ctx, srv, *title, section, items)
	if err != nil {
		return err
	}
	fmt.Printf("Created collection %q (ratingKey %d)\n", c.Title, c.RatingKey)
	return nil
}

func filterFlags(fs *flag.FlagSet) (libtype *string, limit *int, sortArg *string, filters *multiFlag) {
	libtype = fs.String("libtype", "", "item type to filter (defaults to the section type)")
	limit = fs.Int("limit", 0, "limit the number of items")
	sortArg = fs.String("sort", "", "comma-separated column:dir sort fields")
	filters = &multiFlag{}
	fs.Var(filters, "filter", "filter predicate key=value (repeatable)")
	return
}

func buildFilterOptions(libtype string, limit int, sortArg string, filters *multiFlag) (library.FilterOptions, error) {
	opts := library.FilterOptions{Libtype: libtype, Limit: limit}
	if sortArg != "" {
		opts.Sort = strings.Split(sortArg, ",")
	}
	if len(filters.values) > 0 {
		opts.Filters = make(map[string]string, len(filters.values))
		for _, kv := range filters.values {
			k, v, ok := strings.Cut(kv, "=")
			if !ok {
				return opts, fmt.Errorf("invalid filter %q, expected key=value", kv)
			}
			opts.Filters[k] = v
		}
	}
	return opts, nil
}

// multiFlag collects repeated flag values
type multiFlag struct {
	values []string
}

func (m *multiFlag) String() string     { return strings.Join(m.values, ",") }
func (m *multiFlag) Set(v string) error { m.values = append(m.values, v); return nil }

func cmdCreateSmart(ctx context.Context, srv *plex.Client, args []string) error {
	fs := flag.NewFlagSet("create-smart", flag.ExitOnError)
	sectionTitle := fs.String("section", "", "library section title")
	title := fs.String("title", "", "collection title")
	libtype, limit, sortArg, filters := filterFlags(fs)
	fs.Parse(args)
	if *sectionTitle == "" || *title == "" {
		return fmt.Errorf("-section and -title are required")
	}

	section, err := library.Resolve(ctx, srv, *sectionTitle)
	if err != nil {
		return err
	}
	opts, err := buildFilterOptions(*libtype, *limit, *sortArg, filters)
	if err != nil {
		return err
	}
	c, err := collection.CreateSmart(ctx, srv, *title, section, opts)
	if err != nil {
		return err
	}
	fmt.Printf("Created smart collection %q (ratingKey %d)\n", c.Title, c.RatingKey)
	return nil
}

func cmdAdd(ctx context.Context, srv *plex.Client, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	id := fs.Int("id", 0, "collection rating key")
	itemIDs := fs.String("items", "", "comma-separated item rating keys")
	fs.Parse(args)
	if *id == 0 || *itemIDs == "" {
		return fmt.Errorf("-id and -items are required")
	}

	c, err := collection.Fetch(ctx, srv, *id)
	if err != nil {
		return err
	}
	items, err := loadItems(ctx, srv, *itemIDs)
	if err != nil {
		return err
	}
	if err := c.AddItems(ctx, items...); err != nil {
		return err
	}
	fmt.Printf("Added %d item(s) to %q\n", len(items), c.Title)
	return nil
}

func cmdRemove(ctx context.Context, srv *plex.Client, args []string) error {
	fs := flag.NewFlagSet("remove", flag.ExitOnError)
	id := fs.Int("id", 0, "collection rating key")
	itemIDs := fs.String("items", "", "comma-separated item rating keys")
	fs.Parse(args)
	if *id == 0 || *itemIDs == "" {
		return fmt.Errorf("-id and -items are required")
	}

	c, err := collection.Fetch(ctx, srv, *id)
	if err != nil {
		return err
	}
	items, err := loadItems(ctx, srv, *itemIDs)
	if err != nil {
		return err
	}
	if err := c.RemoveItems(ctx, items...); err != nil {
		return err
	}
	fmt.Printf("Removed %d item(s) from %q\n", len(items), c.Title)
	return nil
}

func cmdUpdateFilters(ctx context.Context, srv *plex.Client, args []string) error {
	fs := flag.NewFlagSet("update-filters", flag.ExitOnError)
	id := fs.Int("id", 0, "collection rating key")
	libtype, limit, sortArg, filters := filterFlags(fs)
	fs.Parse(args)
	if *id == 0 {
		return fmt.Errorf("-id is required")
	}

	c, err := collection.Fetch(ctx, srv, *id)
	if err != nil {
		return err
	}
	opts, err := buildFilterOptions(*libtype, *limit, *sortArg, filters)
	if err != nil {
		return err
	}
	if err := c.UpdateFilters(ctx, opts); err != nil {
		return err
	}
	fmt.Printf("Updated filters for %q\n", c.Title)
	return nil
}

func cmdMode(ctx context.Context, srv *plex.Client, args []string) error {
	fs := flag.NewFlagSet("mode", flag.ExitOnError)
	id := fs.Int("id", 0, "collection rating key")
	mode := fs.String("mode", "", "display mode: default, hide, hideItems, showItems")
	fs.Parse(args)
	if *id == 0 || *mode == "" {
		return fmt.Errorf("-id and -mode are required")
	}

	c, err := collection.Fetch(ctx, srv, *id)
	if err != nil {
		return err
	}
	return c.ModeUpdate(ctx, *mode)
}

func cmdSort(ctx context.Context, srv *plex.Client, args []string) error {
	fs := flag.NewFlagSet("sort", flag.ExitOnError)
	id := fs.Int("id", 0, "collection rating key")
	sortArg := fs.String("sort", "", "sort order: release, alpha, custom")
	fs.Parse(args)
	if *id == 0 || *sortArg == "" {
		return fmt.Errorf("-id and -sort are required")
	}

	c, err := collection.Fetch(ctx, srv, *id)
	if err != nil {
		return err
	}
	return c.SortUpdate(ctx, *sortArg)
}

func cmdEdit(ctx context.Context, srv *plex.Client, args []string) error {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	id := fs.Int("id", 0, "collection rating key")
	title := fs.String("title", "", "new title")
	titleSort := fs.String("title-sort", "", "new sort title")
	contentRating := fs.String("content-rating", "", "new content rating")
	summary := fs.String("summary", "", "new summary")
	fs.Parse(args)
	if *id == 0 {
		return fmt.Errorf("-id is required")
	}

	c, err := collection.Fetch(ctx, srv, *id)
	if err != nil {
		return err
	}
	return c.Edit(ctx, collection.EditOptions{
		Title:         *title,
		TitleSort:     *titleSort,
		ContentRating: *contentRating,
		Summary:       *summary,
	})
}

func cmdDelete(ctx context.Context, srv *plex.Client, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	c, err := fetchByID(ctx, srv, args, fs)
	if err != nil {
		return err
	}
	if err := c.Delete(ctx); err != nil {
		return err
	}
	fmt.Printf("Deleted collection %q\n", c.Title)
	return nil
}

func cmdPlayQueue(ctx context.Context, srv *plex.Client, args []string) error {
	fs := flag.NewFlagSet("playqueue", flag.ExitOnError)
	id := fs.Int("id", 0, "collection rating key")
	shuffle := fs.Bool("shuffle", false, "shuffle the queue")
	repeat := fs.Bool("repeat", false, "repeat the queue")
	fs.Parse(args)
	if *id == 0 {
		return fmt.Errorf("-id is required")
	}

	c, err := collection.Fetch(ctx, srv, *id)
	if err != nil {
		return err
	}
	queue, err := c.PlayQueue(ctx, playqueue.Options{Shuffle: *shuffle, Repeat: *repeat})
	if err != nil {
		return err
	}
	fmt.Printf("Created play queue %d with %d item(s)\n", queue.ID, queue.TotalCount)
	return nil
}

func cmdSync(ctx context.Context, srv *plex.Client, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("sync", flag.ExitOnError)
	id := fs.Int("id", 0, "collection rating key")
	limit := fs.Int("limit", 0, "maximum items to sync, 0 for all")
	unwatched := fs.Bool("unwatched", false, "skip watched videos")
	videoQuality := fs.Int("video-quality", syncjob.VideoQualityOriginal, "video quality preset")
	audioBitrate := fs.Int("audio-bitrate", syncjob.AudioBitrate320, "audio bitrate (kbps)")
	photoResolution := fs.String("photo-resolution", syncjob.PhotoResolution1080p, "photo resolution")
	fs.Parse(args)
	if *id == 0 {
		return fmt.Errorf("-id is required")
	}
	if cfg.Server.ClientID == "" {
		return fmt.Errorf("server.client_id must be configured for sync")
	}

	c, err := collection.Fetch(ctx, srv, *id)
	if err != nil {
		return err
	}
	account := syncjob.NewAccount(cfg.Server.Token, cfg.Server.ClientID, slog.Default())
	item, err := c.Sync(ctx, account, collection.SyncOptions{
		Limit:           *limit,
		Unwatched:       *unwatched,
		VideoQuality:    *videoQuality,
		AudioBitrate:    *audioBitrate,
		PhotoResolution: *photoResolution,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Registered sync job %q (%s)\n", item.Title, item.ContentType)
	return nil
}
