package descriptor

import "testing"

func TestParseMavenName(t *testing.T) {
	c, err := parseMavenName("com.mojang:brigadier:1.0.18")
	if err != nil {
		t.Fatal(err)
	}
	if c.GroupID != "com.mojang" || c.ArtifactID != "brigadier" || c.Version != "1.0.18" {
		t.Errorf("unexpected coord: %+v", c)
	}
	if c.dedupKey() != "com.mojang:brigadier" {
		t.Errorf("dedupKey = %q", c.dedupKey())
	}
	if c.filename() != "brigadier-1.0.18.jar" {
		t.Errorf("filename = %q", c.filename())
	}
}

func TestParseMavenNameWithClassifier(t *testing.T) {
	c, err := parseMavenName("org.lwjgl:lwjgl:3.3.2:natives-linux")
	if err != nil {
		t.Fatal(err)
	}
	if c.filename() != "lwjgl-3.3.2-natives-linux.jar" {
		t.Errorf("filename = %q", c.filename())
	}
}

func TestParseMavenNameRejectsMalformed(t *testing.T) {
	if _, err := parseMavenName("not-a-maven-name"); err == nil {
		t.Fatal("expected an error for a name with too few segments")
	}
}

func TestPlainURL(t *testing.T) {
	c, _ := parseMavenName("com.mojang:brigadier:1.0.18")
	got := c.plainURL(defaultLibraryBaseURL)
	want := "https://libraries.minecraft.net/com/mojang/brigadier/1.0.18/brigadier-1.0.18.jar"
	if got != want {
		t.Errorf("plainURL = %q, want %q", got, want)
	}
}
