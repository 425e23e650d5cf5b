package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Registry maps project ids to their declaration sets. It is loaded
// once at startup and read-only afterwards.
type Registry map[string]Project

// LoadDir reads every .yaml/.yml/.json declaration file in dir. The
// project id is the file name without extension; the declared name
// defaults to the id when omitted.
func LoadDir(dir string) (Registry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read scripts dir: %w", err)
	}

	reg := make(Registry)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".yaml" && ext != ".yml" && ext != ".json" {
			continue
		}

		path := filepath.Join(dir, name)
		p, err := LoadFile(path)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", name, err)
		}

		id := strings.TrimSuffix(name, filepath.Ext(name))
		if p.Name == "" {
			p.Name = id
		}
		reg[id] = p
	}
	return reg, nil
}

// LoadFile parses a single project declaration file.
func LoadFile(path string) (Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Project{}, err
	}

	var p Project
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		err = json.Unmarshal(data, &p)
	} else {
		err = yaml.Unmarshal(data, &p)
	}
	if err != nil {
		return Project{}, err
	}
	return p, nil
}

// Get looks up a project by id.
func (r Registry) Get(id string) (Project, bool) {
	p, ok := r[id]
	return p, ok
}

// IDs returns the registered project ids in sorted order.
func (r Registry) IDs() []string {
	ids := make([]string, 0, len(r))
	for id := range r {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
