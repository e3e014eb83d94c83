// Package upload commits generated level documents to a GitHub repository
// through the contents API.
package upload

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/levelforge/internal/config"
)

// ErrNoToken is returned when no credential is configured.
var ErrNoToken = errors.New("upload: no token configured")

const userAgent = "levelforge-uploader"

// Result is the outcome of one upload.
type Result struct {
	Path    string // Path inside the repository
	SHA     string // Blob sha reported by GitHub
	OK      bool
	Message string
	Err     error
}

// Uploader PUTs documents into {folder}/submission_<hex>.txt.
type Uploader struct {
	Settings config.UploadSettings
	Token    string
	Client   *http.Client
	Logger   *log.Logger
}

// New creates an uploader. The token is taken from env, revealing the
// obfuscated variant when the plain one is unset.
func New(settings config.UploadSettings, env config.UploadEnv, logger *log.Logger) (*Uploader, error) {
	env.Apply(&settings)

	token := env.Token
	if token == "" && env.ObfuscatedToken != "" {
		t, err := Reveal(env.ObfuscatedToken)
		if err != nil {
			return nil, err
		}
		token = t
	}

	timeout := time.Duration(settings.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Uploader{
		Settings: settings,
		Token:    token,
		Client:   &http.Client{Timeout: timeout},
		Logger:   logger,
	}, nil
}

// SubmissionPath returns a fresh random target path inside the repository.
func (u *Uploader) SubmissionPath() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	name := fmt.Sprintf("submission_%s.txt", id[:8])
	folder := strings.Trim(u.Settings.Folder, "/")
	if folder == "" {
		return name
	}
	return folder + "/" + name
}

func (u *Uploader) contentsURL(path string) string {
	base := strings.TrimRight(u.Settings.APIBase, "/")
	if base == "" {
		base = "https://api.github.com"
	}
	return fmt.Sprintf("%s/repos/%s/%s/contents/%s", base, u.Settings.Owner, u.Settings.Repo, path)
}

type putRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	Branch  string `json:"branch,omitempty"`
	SHA     string `json:"sha,omitempty"`
}

type contentResponse struct {
	SHA     string `json:"sha"`
	Content struct {
		SHA  string `json:"sha"`
		Path string `json:"path"`
	} `json:"content"`
	Message string `json:"message"`
}

// Upload commits document under a new submission path.
func (u *Uploader) Upload(ctx context.Context, document []byte) Result {
	return u.UploadTo(ctx, u.SubmissionPath(), document)
}

// UploadTo commits document at path, replacing an existing file if one is
// already there.
func (u *Uploader) UploadTo(ctx context.Context, path string, document []byte) Result {
	res := Result{Path: path}
	if u.Token == "" {
		res.Err = ErrNoToken
		res.Message = ErrNoToken.Error()
		return res
	}
	if u.Settings.Owner == "" || u.Settings.Repo == "" {
		res.Err = fmt.Errorf("upload: owner and repo must be set")
		res.Message = res.Err.Error()
		return res
	}

	url := u.contentsURL(path)

	sha, err := u.existingSHA(ctx, url)
	if err != nil {
		res.Err = err
		res.Message = err.Error()
		return res
	}

	body, err := json.Marshal(putRequest{
		Message: u.Settings.CommitMessage,
		Content: base64.StdEncoding.EncodeToString(document),
		Branch:  u.Settings.Branch,
		SHA:     sha,
	})
	if err != nil {
		res.Err = fmt.Errorf("upload: encode request: %w", err)
		res.Message = res.Err.Error()
		return res
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		res.Err = fmt.Errorf("upload: build request: %w", err)
		res.Message = res.Err.Error()
		return res
	}
	u.authorize(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := u.Client.Do(req)
	if err != nil {
		res.Err = fmt.Errorf("upload: put %s: %w", path, err)
		res.Message = res.Err.Error()
		u.Logger.Warn("Upload failed", "path", path, "error", err)
		return res
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	var cr contentResponse
	_ = json.Unmarshal(raw, &cr)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		msg := cr.Message
		if msg == "" {
			msg = strings.TrimSpace(string(raw))
		}
		res.Err = fmt.Errorf("upload: put %s: status %d: %s", path, resp.StatusCode, msg)
		res.Message = res.Err.Error()
		u.Logger.Warn("Upload rejected", "path", path, "status", resp.StatusCode)
		return res
	}

	res.OK = true
	res.SHA = cr.Content.SHA
	res.Message = "uploaded to " + path
	u.Logger.Info("Uploaded level", "path", path)
	return res
}

// UploadAsync runs Upload in a goroutine. The channel delivers exactly one
// result and is then closed.
func (u *Uploader) UploadAsync(ctx context.Context, document []byte) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		ch <- u.Upload(ctx, document)
	}()
	return ch
}

// existingSHA returns the blob sha when the file already exists.
func (u *Uploader) existingSHA(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("upload: build request: %w", err)
	}
	u.authorize(req)

	resp, err := u.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload: get %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", nil
	}
	var cr contentResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", fmt.Errorf("upload: decode existing file: %w", err)
	}
	return cr.SHA, nil
}

func (u *Uploader) authorize(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+u.Token)
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/vnd.github+json")
}
