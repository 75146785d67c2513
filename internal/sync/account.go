package sync

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/mcrews/plexkit/internal/domain"
)

const accountBaseURL = "https://plex.tv"

// Dispatcher submits prepared sync jobs for a target device
type Dispatcher interface {
	Submit(ctx context.Context, item Item) error
}

// Account dispatches sync jobs to the account service for a target device
type Account struct {
	baseURL    string
	token      string
	clientID   string // sync destination device identifier
	httpClient *http.Client
	logger     *slog.Logger
}

// NewAccount creates an account-level sync dispatcher. clientID identifies
// the device the synced media is destined for.
func NewAccount(token, clientID string, logger *slog.Logger) *Account {
	if logger == nil {
		logger = slog.Default()
	}
	return &Account{
		baseURL:  accountBaseURL,
		token:    token,
		clientID: clientID,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// Submit registers the sync job with the account service
func (a *Account) Submit(ctx context.Context, item Item) error {
	params := url.Values{}
	params.Set("SyncItem[title]", item.Title)
	params.Set("SyncItem[rootTitle]", item.RootTitle)
	params.Set("SyncItem[metadataType]", item.MetadataType)
	params.Set("SyncItem[machineIdentifier]", item.MachineIdentifier)
	params.Set("SyncItem[contentType]", item.ContentType)
	params.Set("SyncItem[Policy][scope]", item.Policy.Scope)
	params.Set("SyncItem[Policy][unwatched]", boolFlag(item.Policy.Unwatched))
	params.Set("SyncItem[Policy][value]", strconv.Itoa(item.Policy.Value))
	params.Set("SyncItem[Location][uri]", item.Location)
	params.Set("SyncItem[MediaSettings][audioBoost]", strconv.Itoa(item.MediaSettings.AudioBoost))
	params.Set("SyncItem[MediaSettings][maxVideoBitrate]", strconv.Itoa(item.MediaSettings.MaxVideoBitrate))
	params.Set("SyncItem[MediaSettings][musicBitrate]", strconv.Itoa(item.MediaSettings.MusicBitrate))
	params.Set("SyncItem[MediaSettings][photoQuality]", strconv.Itoa(item.MediaSettings.PhotoQuality))
	params.Set("SyncItem[MediaSettings][photoResolution]", item.MediaSettings.PhotoResolution)
	params.Set("SyncItem[MediaSettings][subtitleSize]", strconv.Itoa(item.MediaSettings.SubtitleSize))
	params.Set("SyncItem[MediaSettings][videoQuality]", strconv.Itoa(item.MediaSettings.VideoQuality))
	params.Set("SyncItem[MediaSettings][videoResolution]", item.MediaSettings.VideoResolution)

	reqURL := fmt.Sprintf("%s/devices/%s/sync_items?%s", a.baseURL, a.clientID, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Plex-Token", a.token)
	req.Header.Set("X-Plex-Client-Identifier", a.clientID)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	a.logger.Debug("submitting sync job", "title", item.Title, "client", a.clientID)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		a.logger.Error("sync submit failed", "error", err)
		return domain.ErrServerOffline
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return domain.ErrAuthFailed
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		a.logger.Error("sync submit error", "status", resp.StatusCode, "body", string(body))
		return fmt.Errorf("failed to submit sync job: status %d", resp.StatusCode)
	}

	return nil
}

func boolFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
