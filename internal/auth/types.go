// Package auth drives the Microsoft -> Xbox Live -> XSTS -> Minecraft login
// chain and holds the resulting account roster.
package auth

import "encoding/json"

// MicrosoftTokenInfo is the token fragment recovered from the OAuth
// redirect's URL fragment after a successful username/password submission.
type MicrosoftTokenInfo struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    uint64 `json:"expires_in"`
	Scope        string `json:"scope"`
	RefreshToken string `json:"refresh_token"`
	UserID       string `json:"user_id"`
}

// UserHash is one entry of an XboxLiveTokenInfo's display claims.
type UserHash struct {
	UHS string `json:"uhs"`
}

// DisplayClaims wraps the xui array Xbox Live returns alongside a token.
type DisplayClaims struct {
	XUI []UserHash `json:"xui"`
}

// XboxLiveTokenInfo is the shared response shape for both the user-auth and
// XSTS-authorize steps.
type XboxLiveTokenInfo struct {
	IssueInstant  string        `json:"IssueInstant"`
	NotAfter      string        `json:"NotAfter"`
	Token         string        `json:"Token"`
	DisplayClaims DisplayClaims `json:"DisplayClaims"`
}

// Hash returns the first user hash, the value servers call uhs, used to
// build the Minecraft identity token.
func (x XboxLiveTokenInfo) Hash() (string, bool) {
	if len(x.DisplayClaims.XUI) == 0 {
		return "", false
	}
	return x.DisplayClaims.XUI[0].UHS, true
}

// MinecraftTokenInfo is the access token minted by login_with_xbox.
type MinecraftTokenInfo struct {
	Username    string `json:"username"`
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   uint64 `json:"expires_in"`
}

// SkinData is one skin entry on a Minecraft profile.
type SkinData struct {
	ID      string `json:"id"`
	State   string `json:"state"`
	URL     string `json:"url"`
	Variant string `json:"variant"`
	Alias   string `json:"alias,omitempty"`
}

// CapeData is one cape entry on a Minecraft profile.
type CapeData struct {
	ID    string `json:"id"`
	State string `json:"state"`
	URL   string `json:"url"`
	Alias string `json:"alias"`
}

// MinecraftAccountInfo is the profile document returned by the Minecraft
// profile endpoint.
type MinecraftAccountInfo struct {
	Name  string     `json:"name"`
	ID    string     `json:"id"`
	Skins []SkinData `json:"skins"`
	Capes []CapeData `json:"capes"`
}

// LoggedInAccount bundles every token and profile document gathered during
// one successful login, everything the launcher needs to resume play
// without asking for credentials again. Profile is flattened into the
// top-level JSON object on save, matching the upstream flatten shape.
type LoggedInAccount struct {
	MicrosoftToken MicrosoftTokenInfo
	XboxLiveToken  XboxLiveTokenInfo
	XSTSToken      XboxLiveTokenInfo
	MinecraftToken MinecraftTokenInfo
	Profile        MinecraftAccountInfo
}

type loggedInAccountJSON struct {
	MicrosoftToken MicrosoftTokenInfo `json:"microsoft_token_info"`
	XboxLiveToken  XboxLiveTokenInfo  `json:"xbox_live_token_info"`
	XSTSToken      XboxLiveTokenInfo  `json:"xsts_token_info"`
	MinecraftToken MinecraftTokenInfo `json:"minecraft_token_info"`
	Name           string             `json:"name"`
	ID             string             `json:"id"`
	Skins          []SkinData         `json:"skins"`
	Capes          []CapeData         `json:"capes"`
}

func (a LoggedInAccount) MarshalJSON() ([]byte, error) {
	return json.Marshal(loggedInAccountJSON{
		MicrosoftToken: a.MicrosoftToken,
		XboxLiveToken:  a.XboxLiveToken,
		XSTSToken:      a.XSTSToken,
		MinecraftToken: a.MinecraftToken,
		Name:           a.Profile.Name,
		ID:             a.Profile.ID,
		Skins:          a.Profile.Skins,
		Capes:          a.Profile.Capes,
	})
}

func (a *LoggedInAccount) UnmarshalJSON(data []byte) error {
	var raw loggedInAccountJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	a.MicrosoftToken = raw.MicrosoftToken
	a.XboxLiveToken = raw.XboxLiveToken
	a.XSTSToken = raw.XSTSToken
	a.MinecraftToken = raw.MinecraftToken
	a.Profile = MinecraftAccountInfo{Name: raw.Name, ID: raw.ID, Skins: raw.Skins, Capes: raw.Capes}
	return nil
}

// MinecraftAccessToken is the bearer token used for the game's own
// Minecraft-session authentication, the value placed into the launch
// command's auth_access_token placeholder.
func (a LoggedInAccount) MinecraftAccessToken() string { return a.MinecraftToken.AccessToken }
