package profiles

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

// iconKind distinguishes a named built-in icon from a user-supplied custom
// image.
type iconKind int

const (
	iconNamed iconKind = iota
	iconPNG
	iconSVG
)

// Icon is a profile's icon: one of the built-in named block textures, or a
// custom PNG/SVG supplied as raw bytes.
type Icon struct {
	kind iconKind
	name string // snake_case key into namedIconDisplay, valid when kind == iconNamed
	data []byte // valid when kind == iconPNG or iconSVG
}

// DefaultIcon is the built-in Grass icon.
var DefaultIcon = Icon{kind: iconNamed, name: "Grass"}

// NamedIcon returns the built-in icon for the given snake_case key (e.g.
// "Crafting_Table"), or false if the key is not one of the recognized
// built-ins.
func NamedIcon(name string) (Icon, bool) {
	if _, ok := namedIconDisplay[name]; !ok {
		return Icon{}, false
	}
	return Icon{kind: iconNamed, name: name}, true
}

// PNGIcon wraps raw PNG bytes as a custom icon.
func PNGIcon(data []byte) Icon { return Icon{kind: iconPNG, data: data} }

// SVGIcon wraps raw SVG bytes as a custom icon.
func SVGIcon(data []byte) Icon { return Icon{kind: iconSVG, data: data} }

// IsCustom reports whether this icon is a user-supplied PNG/SVG rather than
// a built-in.
func (i Icon) IsCustom() bool { return i.kind == iconPNG || i.kind == iconSVG }

// String is the human-readable display name shown in a profile list.
func (i Icon) String() string {
	switch i.kind {
	case iconPNG:
		return "Custom Png"
	case iconSVG:
		return "Custom Svg"
	default:
		return namedIconDisplay[i.name]
	}
}

const (
	pngPrefix = "data:image/png;base64,"
	svgPrefix = "data:image/svg;base64,"
)

// AsString is the on-disk encoding: the bare snake_case key for a built-in,
// or a data URI for a custom icon. The SVG prefix intentionally omits the
// "+xml" suffix a strict data-URI would carry; this mirrors the prefix the
// original launcher emits and is read back unchanged, so it is kept as-is
// rather than "corrected" against the data URI spec.
func (i Icon) AsString() string {
	switch i.kind {
	case iconPNG:
		return pngPrefix + base64.StdEncoding.EncodeToString(i.data)
	case iconSVG:
		return svgPrefix + base64.StdEncoding.EncodeToString(i.data)
	default:
		return i.name
	}
}

func (i Icon) MarshalJSON() ([]byte, error) {
	return []byte(`"` + i.AsString() + `"`), nil
}

func (i *Icon) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	if _, ok := namedIconDisplay[s]; ok {
		*i = Icon{kind: iconNamed, name: s}
		return nil
	}
	if strings.HasPrefix(s, pngPrefix) {
		decoded, err := decodeIconBase64(s)
		if err != nil {
			return err
		}
		*i = Icon{kind: iconPNG, data: decoded}
		return nil
	}
	if strings.HasPrefix(s, svgPrefix) {
		decoded, err := decodeIconBase64(s)
		if err != nil {
			return err
		}
		*i = Icon{kind: iconSVG, data: decoded}
		return nil
	}
	return fmt.Errorf("profiles: unrecognized icon %q (expected a built-in name or a data:image/<png|svg>;base64,<data> URI)", s)
}

func decodeIconBase64(s string) ([]byte, error) {
	_, rest, ok := strings.Cut(s, ",")
	if !ok {
		return nil, fmt.Errorf("profiles: malformed icon data URI %q", s)
	}
	decoded, err := base64.StdEncoding.DecodeString(rest)
	if err != nil {
		return nil, fmt.Errorf("profiles: decoding icon base64: %w", err)
	}
	return decoded, nil
}

// namedIconDisplay is the full catalog of built-in icons: snake_case
// on-disk key to human display name.
var namedIconDisplay = map[string]string{
	"Grass":                        "Grass",
	"Crafting_Table":               "Crafting Table",
	"Dirt":                         "Dirt",
	"Bedrock":                      "Bedrock",
	"Bookshelf":                    "Bookshelf",
	"Brick":                        "Brick",
	"Cake":                         "Cake",
	"Carved_Pumpkin":               "Carved Pumpkin",
	"Chest":                        "Chest",
	"Clay":                         "Clay",
	"Coal_Block":                   "Block of Coal",
	"Coal_Ore":                     "Coal Ore",
	"Cobblestone":                  "Cobblestone",
	"Creeper_Head":                 "Creeper Head",
	"Diamond_Block":                "Block of Diamond",
	"Diamond_Ore":                  "Diamond Ore",
	"Dirt_Podzol":                  "Podzol",
	"Dirt_Snow":                    "Snowy Grass",
	"Emerald_Block":                "Block of Emerald",
	"Emerald_Ore":                  "Emerald Ore",
	"Enchanting_Table":             "Enchanting Table",
	"End_Stone":                    "End Stone",
	"Farmland":                     "Farmland",
	"Furnace":                      "Furnace",
	"Furnace_On":                   "Lit Furnace",
	"Glass":                        "Glass",
	"Glazed_Terracotta_Light_Blue": "Light Blue Glazed Terracotta",
	"Glazed_Terracotta_Orange":     "Orange Glazed Terracotta",
	"Glazed_Terracotta_White":      "White Glazed Terracotta",
	"Glowstone":                    "Glowstone",
	"Gold_Block":                   "Block of Gold",
	"Gold_Ore":                     "Gold Ore",
	"Gravel":                       "Gravel",
	"Hardened_Clay":                "Terracotta",
	"Ice_Packed":                   "Packed Ice",
	"Iron_Block":                   "Block of Iron",
	"Iron_Ore":                     "Iron Ore",
	"Lapis_Ore":                    "Lapis Ore",
	"Leaves_Birch":                 "Birch Leaves",
	"Leaves_Jungle":                "Jungle Leaves",
	"Leaves_Oak":                   "Oak Leaves",
	"Leaves_Spruce":                "Spruce Leaves",
	"Lectern_Book":                 "Lectern",
	"Log_Acacia":                   "Acacia Log",
	"Log_Birch":                    "Birch Log",
	"Log_DarkOak":                  "Dark Oak Log",
	"Log_Jungle":                   "Jungle Log",
	"Log_Oak":                      "Oak Log",
	"Log_Spruce":                   "Spruce Log",
	"Mycelium":                     "Mycelium",
	"Nether_Brick":                 "Nether Bricks",
	"Netherrack":                   "Netherrack",
	"Obsidian":                     "Obsidian",
	"Planks_Acacia":                "Acacia Planks",
	"Planks_Birch":                 "Birch Planks",
	"Planks_DarkOak":               "Dark Oak Planks",
	"Planks_Jungle":                "Jungle Planks",
	"Planks_Oak":                   "Oak Planks",
	"Planks_Spruce":                "Spruce Planks",
	"Quartz_Ore":                   "Quartz Ore",
	"Red_Sand":                     "Red Sand",
	"Red_Sandstone":                "Red Sandstone",
	"Redstone_Block":               "Block of Redstone",
	"Redstone_Ore":                 "Redstone Ore",
	"Sand":                         "Sand",
	"Sandstone":                    "Sandstone",
	"Skeleton_Skull":               "Skeleton Skull",
	"Snow":                         "Snow",
	"Soul_Sand":                    "Soul Sand",
	"Stone":                        "Stone",
	"Stone_Andesite":               "Andesite",
	"Stone_Diorite":                "Diorite",
	"Stone_Granite":                "Granite",
	"TNT":                          "TNT",
	"Water":                        "Water",
	"Wool":                         "Wool",
}
