package helixmind

import (
	"testing"
)

func Test_Cache(t *testing.T) {
	c, err := OpenCache(t.TempDir())
	if err != nil {
		t.Fatalf("OpenCache() error = %v", err)
	}
	defer c.Close()

	if _, ok := c.Get("kegg:/get/ec:1.1.1.1"); ok {
		t.Error("Get() on an empty cache reported a hit")
	}

	c.Set("kegg:/get/ec:1.1.1.1", []byte("ENTRY       EC 1.1.1.1"))
	val, ok := c.Get("kegg:/get/ec:1.1.1.1")
	if !ok {
		t.Fatal("Get() missed a key that was just set")
	}
	if string(val) != "ENTRY       EC 1.1.1.1" {
		t.Errorf("Get() = %q", val)
	}
}

func Test_Cache_nil(t *testing.T) {
	// clients treat a nil cache as a no-op
	var c *Cache

	c.Set("k", []byte("v"))
	if _, ok := c.Get("k"); ok {
		t.Error("nil cache reported a hit")
	}
	if err := c.Close(); err != nil {
		t.Errorf("nil cache Close() error = %v", err)
	}
}
