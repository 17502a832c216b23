package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	authorizeURL = "https://login.live.com/oauth20_authorize.srf?client_id=000000004C12AE6F&redirect_uri=https://login.live.com/oauth20_desktop.srf&scope=service::user.auth.xboxlive.com::MBI_SSL&display=touch&response_type=token&locale=en"
	xboxUserAuthURL = "https://user.auth.xboxlive.com/user/authenticate"
	xstsAuthURL     = "https://xsts.auth.xboxlive.com/xsts/authorize"
	mcAuthURL       = "https://api.minecraftservices.com/authentication/login_with_xbox"
	mcProfileURL    = "https://api.minecraftservices.com/minecraft/profile"
)

var (
	pfttRegexp    = regexp.MustCompile(`value="(.+?)"`)
	urlPostRegexp = regexp.MustCompile(`urlPost:'(.+?)'`)
)

// Client drives the username/password login chain. A fresh Client must be
// used per login attempt: it carries the cookie jar the Microsoft login
// form depends on.
type Client struct {
	http      *http.Client
	userAgent string
}

// NewClient builds a login Client with its own cookie jar layered on top
// of the given base transport (normally the shared download engine's
// *http.Client, reused for its redirect/timeout policy).
func NewClient(base *http.Client, userAgent string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("auth: building cookie jar: %w", err)
	}
	httpClient := &http.Client{Jar: jar}
	if base != nil {
		httpClient.Timeout = base.Timeout
		httpClient.Transport = base.Transport
	}
	return &Client{http: httpClient, userAgent: userAgent}, nil
}

// Login runs the full Microsoft -> Xbox Live -> XSTS -> Minecraft chain for
// one username/password pair via HTML form scraping (no client secret or
// device-code flow is available to a unregistered, non-Azure-app launcher).
func (c *Client) Login(ctx context.Context, username, password string) (LoggedInAccount, error) {
	msToken, err := c.passwordLogin(ctx, username, password)
	if err != nil {
		return LoggedInAccount{}, err
	}

	xboxToken, err := c.xboxAuth(ctx, msToken.AccessToken)
	if err != nil {
		return LoggedInAccount{}, &AccountError{Kind: Other, Err: err}
	}

	xstsToken, err := c.xstsAuth(ctx, xboxToken.Token)
	if err != nil {
		return LoggedInAccount{}, &AccountError{Kind: Other, Err: err}
	}

	uhs, ok := xstsToken.Hash()
	if !ok {
		return LoggedInAccount{}, &AccountError{Kind: Other, Err: fmt.Errorf("xsts response carried no user hash")}
	}

	mcToken, err := c.minecraftLogin(ctx, uhs, xstsToken.Token)
	if err != nil {
		return LoggedInAccount{}, &AccountError{Kind: Other, Err: err}
	}

	profile, err := c.fetchProfile(ctx, mcToken.AccessToken)
	if err != nil {
		return LoggedInAccount{}, &AccountError{Kind: Other, Err: err}
	}

	return LoggedInAccount{
		MicrosoftToken: msToken,
		XboxLiveToken:  xboxToken,
		XSTSToken:      xstsToken,
		MinecraftToken: mcToken,
		Profile:        profile,
	}, nil
}

// passwordLogin performs the two-step HTML form scrape: GET the login page
// to recover the PPFT token and form post URL, then POST credentials and
// inspect the resulting page for rejection/2FA markers before parsing the
// token fragment out of the final redirect URL.
func (c *Client) passwordLogin(ctx context.Context, username, password string) (MicrosoftTokenInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, authorizeURL, nil)
	if err != nil {
		return MicrosoftTokenInfo{}, err
	}
	c.setCommonHeaders(req)
	resp, err := c.http.Do(req)
	if err != nil {
		return MicrosoftTokenInfo{}, err
	}
	body, err := readAndClose(resp)
	if err != nil {
		return MicrosoftTokenInfo{}, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return MicrosoftTokenInfo{}, fmt.Errorf("auth: parsing login page: %w", err)
	}
	scriptText := doc.Find("script").Text()
	if scriptText == "" {
		scriptText = string(body)
	}

	pfft, err := extractFirstGroup(pfttRegexp, scriptText)
	if err != nil {
		return MicrosoftTokenInfo{}, fmt.Errorf("auth: recovering PPFT token: %w", err)
	}
	urlPost, err := extractFirstGroup(urlPostRegexp, scriptText)
	if err != nil {
		return MicrosoftTokenInfo{}, fmt.Errorf("auth: recovering form post url: %w", err)
	}

	form := url.Values{
		"login":    {username},
		"loginfmt": {username},
		"passwd":   {password},
		"PPFT":     {pfft},
	}
	postReq, err := http.NewRequestWithContext(ctx, http.MethodPost, urlPost, strings.NewReader(form.Encode()))
	if err != nil {
		return MicrosoftTokenInfo{}, err
	}
	postReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	c.setCommonHeaders(postReq)

	postResp, err := c.http.Do(postReq)
	if err != nil {
		return MicrosoftTokenInfo{}, err
	}
	finalURL := postResp.Request.URL.String()
	postBody, err := readAndClose(postResp)
	if err != nil {
		return MicrosoftTokenInfo{}, err
	}

	if strings.Contains(string(postBody), "Sign in to") {
		return MicrosoftTokenInfo{}, &AccountError{Kind: InvalidCredentials}
	}
	if strings.Contains(string(postBody), "Help us protect your account") {
		return MicrosoftTokenInfo{}, &AccountError{Kind: Requires2FA}
	}

	fragment, ok := splitFragment(finalURL)
	if !ok {
		return MicrosoftTokenInfo{}, &AccountError{Kind: Other, Err: fmt.Errorf("login redirect carried no token fragment")}
	}
	return parseMicrosoftTokenFragment(fragment)
}

func (c *Client) xboxAuth(ctx context.Context, msAccessToken string) (XboxLiveTokenInfo, error) {
	body := map[string]any{
		"Properties": map[string]string{
			"AuthMethod": "RPS",
			"SiteName":   "user.auth.xboxlive.com",
			"RpsTicket":  msAccessToken,
		},
		"RelyingParty": "http://auth.xboxlive.com",
		"TokenType":    "JWT",
	}
	return c.doTokenRequest(ctx, xboxUserAuthURL, body)
}

func (c *Client) xstsAuth(ctx context.Context, xboxToken string) (XboxLiveTokenInfo, error) {
	body := map[string]any{
		"Properties": map[string]any{
			"SandboxId":  "RETAIL",
			"UserTokens": []string{xboxToken},
		},
		"RelyingParty": "rp://api.minecraftservices.com/",
		"TokenType":    "JWT",
	}
	return c.doTokenRequest(ctx, xstsAuthURL, body)
}

func (c *Client) doTokenRequest(ctx context.Context, endpoint string, body any) (XboxLiveTokenInfo, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return XboxLiveTokenInfo{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(string(payload)))
	if err != nil {
		return XboxLiveTokenInfo{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-xbl-contract-version", "1")
	c.setCommonHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return XboxLiveTokenInfo{}, err
	}
	data, err := readAndClose(resp)
	if err != nil {
		return XboxLiveTokenInfo{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return XboxLiveTokenInfo{}, fmt.Errorf("auth: %s returned %d: %s", endpoint, resp.StatusCode, data)
	}
	var token XboxLiveTokenInfo
	if err := json.Unmarshal(data, &token); err != nil {
		return XboxLiveTokenInfo{}, fmt.Errorf("auth: decoding response from %s: %w", endpoint, err)
	}
	return token, nil
}

func (c *Client) minecraftLogin(ctx context.Context, uhs, xstsToken string) (MinecraftTokenInfo, error) {
	body := map[string]any{
		"identityToken":      fmt.Sprintf("XBL3.0 x=%s;%s", uhs, xstsToken),
		"ensureLegacyEnabled": true,
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return MinecraftTokenInfo{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, mcAuthURL, strings.NewReader(string(payload)))
	if err != nil {
		return MinecraftTokenInfo{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	c.setCommonHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return MinecraftTokenInfo{}, err
	}
	data, err := readAndClose(resp)
	if err != nil {
		return MinecraftTokenInfo{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return MinecraftTokenInfo{}, fmt.Errorf("auth: minecraft login returned %d: %s", resp.StatusCode, data)
	}
	var token MinecraftTokenInfo
	if err := json.Unmarshal(data, &token); err != nil {
		return MinecraftTokenInfo{}, fmt.Errorf("auth: decoding minecraft token: %w", err)
	}
	return token, nil
}

func (c *Client) fetchProfile(ctx context.Context, accessToken string) (MinecraftAccountInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, mcProfileURL, nil)
	if err != nil {
		return MinecraftAccountInfo{}, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	c.setCommonHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return MinecraftAccountInfo{}, err
	}
	data, err := readAndClose(resp)
	if err != nil {
		return MinecraftAccountInfo{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return MinecraftAccountInfo{}, fmt.Errorf("auth: fetching profile returned %d: %s", resp.StatusCode, data)
	}
	var profile MinecraftAccountInfo
	if err := json.Unmarshal(data, &profile); err != nil {
		return MinecraftAccountInfo{}, fmt.Errorf("auth: decoding profile: %w", err)
	}
	return profile, nil
}

func (c *Client) setCommonHeaders(req *http.Request) {
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
}

func readAndClose(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

func extractFirstGroup(re *regexp.Regexp, s string) (string, error) {
	m := re.FindStringSubmatch(s)
	if len(m) < 2 {
		return "", fmt.Errorf("pattern %s not found", re.String())
	}
	return m[1], nil
}

// splitFragment returns the portion of a URL after its "#", as the login
// redirect carries the token set as a fragment rather than a query string.
func splitFragment(rawURL string) (string, bool) {
	idx := strings.Index(rawURL, "#")
	if idx < 0 {
		return "", false
	}
	return rawURL[idx+1:], true
}

func parseMicrosoftTokenFragment(fragment string) (MicrosoftTokenInfo, error) {
	values := make(map[string]string)
	for _, pair := range strings.Split(fragment, "&") {
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) != 2 {
			continue
		}
		if decoded, err := url.QueryUnescape(kv[1]); err == nil {
			values[kv[0]] = decoded
		} else {
			values[kv[0]] = kv[1]
		}
	}

	required := []string{"access_token", "token_type", "expires_in", "scope", "refresh_token", "user_id"}
	for _, key := range required {
		if _, ok := values[key]; !ok {
			return MicrosoftTokenInfo{}, fmt.Errorf("auth: token fragment missing %q", key)
		}
	}
	expiresIn, err := strconv.ParseUint(values["expires_in"], 10, 64)
	if err != nil {
		return MicrosoftTokenInfo{}, fmt.Errorf("auth: parsing expires_in: %w", err)
	}

	return MicrosoftTokenInfo{
		AccessToken:  values["access_token"],
		TokenType:    values["token_type"],
		ExpiresIn:    expiresIn,
		Scope:        values["scope"],
		RefreshToken: values["refresh_token"],
		UserID:       values["user_id"],
	}, nil
}
