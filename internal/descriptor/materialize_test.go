package descriptor

import (
	"context"
	"testing"
)

type mapLoader map[string]string

func (m mapLoader) Load(_ context.Context, id string) ([]byte, error) {
	data, ok := m[id]
	if !ok {
		return nil, errNotFoundTest{id}
	}
	return []byte(data), nil
}

type errNotFoundTest struct{ id string }

func (e errNotFoundTest) Error() string { return "not found: " + e.id }

const parentDescriptor = `{
  "id": "1.20.4",
  "mainClass": "net.minecraft.client.main.Main",
  "type": "release",
  "assetIndex": {"id": "12", "url": "https://example.com/12.json", "sha1": "0000000000000000000000000000000000000a", "size": 10},
  "downloads": {"client": {"url": "https://example.com/client.jar", "sha1": "0000000000000000000000000000000000000b", "size": 20}},
  "arguments": {
    "game": ["--username", {"rules": [{"action": "allow", "features": {"is_demo_user": true}}], "value": "--demo"}],
    "jvm": ["-Xss1M"]
  },
  "libraries": [
    {"name": "com.mojang:brigadier:1.0.18", "downloads": {"artifact": {"url": "https://libraries.minecraft.net/com/mojang/brigadier/1.0.18/brigadier-1.0.18.jar", "sha1": "0000000000000000000000000000000000000c", "size": 30}}},
    {"name": "org.lwjgl:lwjgl:3.3.2", "downloads": {"artifact": {"url": "https://libraries.minecraft.net/org/lwjgl/lwjgl/3.3.2/lwjgl-3.3.2.jar", "sha1": "0000000000000000000000000000000000000d", "size": 40}}}
  ],
  "logging": {"client": {"argument": "-Dlog4j.configurationFile=${path}", "type": "log4j2-xml", "file": {"id": "client-1.12.xml", "url": "https://example.com/log.xml", "sha1": "0000000000000000000000000000000000000e", "size": 5}}}
}`

const childDescriptor = `{
  "id": "fabric-loader-0.15.0-1.20.4",
  "inheritsFrom": "1.20.4",
  "mainClass": "net.fabricmc.loader.impl.launch.knot.KnotClient",
  "arguments": {
    "game": ["--fabric"],
    "jvm": []
  },
  "libraries": [
    {"name": "org.lwjgl:lwjgl:3.3.3", "downloads": {"artifact": {"url": "https://libraries.minecraft.net/org/lwjgl/lwjgl/3.3.3/lwjgl-3.3.3.jar", "sha1": "0000000000000000000000000000000000000f", "size": 50}}},
    {"name": "net.fabricmc:fabric-loader:0.15.0", "downloads": {"artifact": {"url": "https://maven.fabricmc.net/net/fabricmc/fabric-loader/0.15.0/fabric-loader-0.15.0.jar", "sha1": "00000000000000000000000000000000000010", "size": 60}}}
  ]
}`

func testLoader() mapLoader {
	return mapLoader{
		"1.20.4":                          parentDescriptor,
		"fabric-loader-0.15.0-1.20.4":      childDescriptor,
	}
}

func TestMaterializeMainClassPrefersChild(t *testing.T) {
	v, err := Materialize(context.Background(), testLoader(), "fabric-loader-0.15.0-1.20.4")
	if err != nil {
		t.Fatal(err)
	}
	if v.MainClass != "net.fabricmc.loader.impl.launch.knot.KnotClient" {
		t.Errorf("MainClass = %q, want the child's main class", v.MainClass)
	}
	if v.Type != "release" {
		t.Errorf("Type = %q, want inherited from parent", v.Type)
	}
}

func TestMaterializeLibraryDedupChildWins(t *testing.T) {
	v, err := Materialize(context.Background(), testLoader(), "fabric-loader-0.15.0-1.20.4")
	if err != nil {
		t.Fatal(err)
	}
	var lwjgl *LibraryInfo
	count := 0
	for i, l := range v.Libs {
		if l.Name == "org.lwjgl:lwjgl" {
			count++
			lwjgl = &v.Libs[i]
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one org.lwjgl:lwjgl entry after dedup, got %d", count)
	}
	if lwjgl.Filename != "lwjgl-3.3.3.jar" {
		t.Errorf("child's library version should win, got %s", lwjgl.Filename)
	}
}

func TestMaterializeAppendsSyntheticClientJar(t *testing.T) {
	v, err := Materialize(context.Background(), testLoader(), "fabric-loader-0.15.0-1.20.4")
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, l := range v.Libs {
		if l.Name == "net.minecraft:client:1.20.4" {
			found = true
		}
	}
	if !found {
		t.Error("expected a synthetic net.minecraft:client library entry")
	}
}

func TestMaterializeArgumentOrder(t *testing.T) {
	v, err := Materialize(context.Background(), testLoader(), "fabric-loader-0.15.0-1.20.4")
	if err != nil {
		t.Fatal(err)
	}
	// child-literal ("--fabric") then parent-literal ("--username") then
	// parent-conditional (the is_demo_user rule).
	if len(v.Arguments.Game) != 3 {
		t.Fatalf("expected 3 game arguments, got %d: %+v", len(v.Arguments.Game), v.Arguments.Game)
	}
	if v.Arguments.Game[0].Values[0] != "--fabric" {
		t.Errorf("first argument should be the child's literal, got %+v", v.Arguments.Game[0])
	}
	if v.Arguments.Game[1].Values[0] != "--username" {
		t.Errorf("second argument should be the parent's literal, got %+v", v.Arguments.Game[1])
	}
	if len(v.Arguments.Game[2].Rules) == 0 {
		t.Errorf("third argument should be the parent's conditional entry, got %+v", v.Arguments.Game[2])
	}
}

func TestMaterializeSyntheticLoggingArgument(t *testing.T) {
	v, err := Materialize(context.Background(), testLoader(), "fabric-loader-0.15.0-1.20.4")
	if err != nil {
		t.Fatal(err)
	}
	last := v.Arguments.JVM[len(v.Arguments.JVM)-1]
	if last.Values[0] != "-Dlog4j.configurationFile=${logging_path}" {
		t.Errorf("logging argument should rewrite ${path} to ${logging_path}, got %+v", last.Values)
	}
}

func TestMaterializeRejectsDepthBeyondOne(t *testing.T) {
	loader := mapLoader{
		"grandchild": `{"id": "grandchild", "inheritsFrom": "child"}`,
		"child":      `{"id": "child", "inheritsFrom": "parent"}`,
		"parent":     `{"id": "parent"}`,
	}
	_, err := Materialize(context.Background(), loader, "grandchild")
	if err == nil {
		t.Fatal("expected an error when inheritance exceeds the supported depth")
	}
}

func TestMaterializeRootWithNoParent(t *testing.T) {
	v, err := Materialize(context.Background(), testLoader(), "1.20.4")
	if err != nil {
		t.Fatal(err)
	}
	if v.MainClass != "net.minecraft.client.main.Main" {
		t.Errorf("MainClass = %q", v.MainClass)
	}
}
