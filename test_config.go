package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"ezconfig-cli/internal/config"
	"ezconfig-cli/internal/interfaces"
)

func main() {
	fmt.Println("Testing ezconfig Settings System")
	fmt.Println("================================")

	// Create a test schema file
	dir, err := os.MkdirTemp("", "ezconfig-test")
	if err != nil {
		log.Fatalf("Failed to create test directory: %v", err)
	}
	defer os.RemoveAll(dir)

	schemaPath := filepath.Join(dir, "ezconfig.toml")
	testSchema := `
file = "settings.json"
title = "demo({{ .Path | base }})"
headers = ["Key", "Value"]
target = "stdout"

[[fields]]
name = "DELAY"
type = "float"
default = 5

[[fields]]
name = "LINK"
required = true

[[fields]]
name = "USE_PROXY"
type = "bool"
required = true

[[fields]]
name = "USE_CACHE"
type = "bool"
required = true
`

	err = os.WriteFile(schemaPath, []byte(testSchema), 0644)
	if err != nil {
		log.Fatalf("Failed to create test schema: %v", err)
	}

	// Test 1: Load schema from file
	fmt.Println("\n1. Testing schema file loading:")
	manager := config.NewManager()
	settings, err := manager.Load(schemaPath)
	if err != nil {
		log.Fatalf("Failed to load schema: %v", err)
	}

	fmt.Printf("   File: %s\n", settings.File)
	fmt.Printf("   Title: %s\n", settings.Title)
	fmt.Printf("   Fields: %d\n", len(settings.Fields))
	fmt.Printf("   Target: %s\n", settings.Target)

	// Test 2: Environment variable precedence
	fmt.Println("\n2. Testing environment variable precedence:")
	os.Setenv("EZCONFIG_FILE", "from-env.json")
	os.Setenv("EZCONFIG_TARGET", "clipboard")
	defer func() {
		os.Unsetenv("EZCONFIG_FILE")
		os.Unsetenv("EZCONFIG_TARGET")
	}()

	manager2 := config.NewManager()
	settings2, err := manager2.Load(schemaPath)
	if err != nil {
		log.Fatalf("Failed to load schema: %v", err)
	}

	fmt.Printf("   File (env override): %s\n", settings2.File)
	fmt.Printf("   Target (env override): %s\n", settings2.Target)
	fmt.Printf("   Title (from schema): %s\n", settings2.Title)

	// Test 3: Flag precedence
	fmt.Println("\n3. Testing flag precedence:")
	manager3 := config.NewManager()
	manager3.Load(schemaPath)
	manager3.SetFlag("file", "from-flag.json")
	manager3.SetFlag("fields", []string{"LINK=https://example.com!"})

	settings3, err := manager3.Resolve()
	if err != nil {
		log.Fatalf("Failed to resolve settings: %v", err)
	}

	fmt.Printf("   File (flag override): %s\n", settings3.File)
	fmt.Printf("   First field (flag): %s = %v\n", settings3.Fields[0].Name, settings3.Fields[0].Default)
	fmt.Printf("   Target (from env): %s\n", settings3.Target)

	// Test 4: Validation
	fmt.Println("\n4. Testing validation:")
	err = manager3.Validate(settings3)
	if err != nil {
		fmt.Printf("   Validation failed: %v\n", err)
	} else {
		fields, _ := config.BuildFields(settings3.Fields)
		fmt.Printf("   ✓ Settings are valid, fields: %v\n", fields.Names())
	}

	// Test 5: Invalid settings
	fmt.Println("\n5. Testing invalid settings:")
	invalid := *settings3
	invalid.Format = "yaml"
	invalid.Fields = append([]interfaces.FieldDecl{{Name: "PORT", Type: "int", Default: "eighty"}}, invalid.Fields...)

	err = manager3.Validate(&invalid)
	if err != nil {
		fmt.Printf("   ✓ Validation correctly caught errors: %v\n", err)
	} else {
		fmt.Printf("   ✗ Validation should have failed\n")
	}

	fmt.Println("\n✓ Settings system test completed successfully!")
}
