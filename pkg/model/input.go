package model

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

type RawCourse struct {
	Code    string
	Name    string
	Credits int
	Prereqs []any // Each group is either a list of codes, a single code or {courses: [...]}
}

type RawPrereqGroup struct {
	Courses []string
}

type RawRequirement struct {
	Name    string
	Courses []string
	Count   int
}

type RawTrack struct {
	Name         string
	College      string
	Requirements []RawRequirement
}

type RawMajor struct {
	Name         string
	College      string
	Tracks       []RawTrack
	Requirements []RawRequirement
}

type RawCatalog struct {
	Courses []RawCourse
	Majors  []RawMajor
}

// LoadCatalog reads a catalog file; ".yaml" and ".yml" files are parsed as YAML, anything else as JSON
func LoadCatalog(file string) (*Catalog, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("cannot read catalog file: %w", err)
	}

	var inputMap map[string]any
	switch strings.ToLower(filepath.Ext(file)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(bytes, &inputMap)
	default:
		err = json.Unmarshal(bytes, &inputMap)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot parse catalog file %v: %w", file, err)
	}

	var rawCatalog RawCatalog
	if err := mapstructure.Decode(inputMap, &rawCatalog); err != nil {
		return nil, fmt.Errorf("cannot decode catalog file %v: %w", file, err)
	}
	return ProcessRawCatalog(rawCatalog)
}

func ProcessRawCatalog(rawCatalog RawCatalog) (*Catalog, error) {
	courses := make([]Course, 0, len(rawCatalog.Courses))
	for _, rawCourse := range rawCatalog.Courses {
		if rawCourse.Code == "" {
			return nil, fmt.Errorf("course without code: %+v", rawCourse)
		}

		groups := make([]PrereqGroup, 0, len(rawCourse.Prereqs))
		for i, rawGroup := range rawCourse.Prereqs {
			group, err := decodePrereqGroup(rawGroup)
			if err != nil {
				return nil, fmt.Errorf("course \"%v\", prerequisite group %d: %w", rawCourse.Code, i, err)
			}
			groups = append(groups, group)
		}

		courses = append(courses, Course{
			Code:    rawCourse.Code,
			Name:    rawCourse.Name,
			Credits: rawCourse.Credits,
			Prereqs: groups,
		})
	}

	majors := lo.Map(rawCatalog.Majors, func(rawMajor RawMajor, _ int) Major {
		return Major{
			Name:    rawMajor.Name,
			College: rawMajor.College,
			Tracks: lo.Map(rawMajor.Tracks, func(rawTrack RawTrack, _ int) Track {
				return Track{
					Name:         rawTrack.Name,
					College:      rawTrack.College,
					Requirements: processRawRequirements(rawTrack.Requirements),
				}
			}),
			Requirements: processRawRequirements(rawMajor.Requirements),
		}
	})

	return NewCatalog(courses, majors)
}

func processRawRequirements(rawRequirements []RawRequirement) []Requirement {
	return lo.Map(rawRequirements, func(rawRequirement RawRequirement, _ int) Requirement {
		return Requirement{
			Name:    rawRequirement.Name,
			Courses: rawRequirement.Courses,
			Count:   rawRequirement.Count,
		}
	})
}

func decodePrereqGroup(rawGroup any) (PrereqGroup, error) {
	switch value := rawGroup.(type) {
	case string:
		return PrereqGroup{Courses: []string{value}}, nil
	case []any:
		var codes []string
		if err := mapstructure.Decode(value, &codes); err != nil {
			return PrereqGroup{}, err
		}
		return PrereqGroup{Courses: codes}, nil
	case map[string]any:
		var group RawPrereqGroup
		if err := mapstructure.Decode(value, &group); err != nil {
			return PrereqGroup{}, err
		}
		return PrereqGroup(group), nil
	}
	return PrereqGroup{}, fmt.Errorf("unsupported prerequisite group %v (%T)", rawGroup, rawGroup)
}
