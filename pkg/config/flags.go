package config

import (
	"flag"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"google.golang.org/protobuf/types/known/structpb"
)

// skippedConfigFlags is the list of command line flags that are never read from a config file.
var skippedConfigFlags = []string{"print_version", "config_file"}

// configValueToString converts a config leaf to its string representation suitable for flag setting.
func configValueToString(name string, v *structpb.Value) (string, error) {
	switch kind := v.GetKind().(type) {
	case *structpb.Value_BoolValue:
		return strconv.FormatBool(kind.BoolValue), nil
	case *structpb.Value_NumberValue:
		return strconv.FormatFloat(kind.NumberValue, 'f', -1, 64), nil
	case *structpb.Value_StringValue:
		return kind.StringValue, nil
	case *structpb.Value_NullValue:
		return "", fmt.Errorf("null value for '%s'", name)
	default:
		return "", fmt.Errorf("unsupported value for '%s': %T", name, kind)
	}
}

// collectFlags collects all leaves of `s` with their values. The collected flags are put inside the given `flags`
// variable. Nested objects are walked; their own names are ignored.
func collectFlags(flags map[ /*flagName*/ string] /*flagValue*/ string, path string, s *structpb.Struct) error {
	fields := s.GetFields()
	for _, name := range slices.Sorted(maps.Keys(fields)) {
		value := fields[name]
		fullName := strings.TrimPrefix(path+"."+name, ".")
		switch kind := value.GetKind().(type) {
		case *structpb.Value_ListValue: // Lists are not supported by design.
			return fmt.Errorf("lists not supported: %s", fullName)
		case *structpb.Value_StructValue:
			if err := collectFlags(flags, fullName, kind.StructValue); err != nil {
				return err
			}
		default:
			stringValue, err := configValueToString(fullName, value)
			if err != nil {
				return fmt.Errorf("failed to convert %s: %w", fullName, err)
			}
			// Check for duplicate flag entries.
			if _, alreadyExists := flags[name]; alreadyExists {
				return fmt.Errorf("flag '%s' has multiple entries in json config: '%s'", name, fullName)
			}
			flags[name] = stringValue
		}
	}
	return nil
}

// setConfigFlags sets all the filled flags in the given `conf` to the global flag variables.
func setConfigFlags(conf *structpb.Struct) error {
	configFlags := make(map[ /*flagName*/ string] /*flagValue*/ string)
	if err := collectFlags(configFlags, "" /*path*/, conf); err != nil {
		return fmt.Errorf("failed to collect flags: %w", err)
	}
	for flagName, flagValue := range configFlags {
		if slices.Contains(skippedConfigFlags, flagName) {
			return fmt.Errorf("flag %s can't be set from a config file", flagName)
		}
		if setErr := flag.Set(flagName, flagValue); setErr != nil {
			return fmt.Errorf("failed to set flag %s: %w", flagName, setErr)
		}
	}
	return nil
}

// getDefinedFlags returns the set of flags listed in the embedded default config.
func getDefinedFlags() (map[ /*flagName*/ string]struct{}, error) {
	conf, err := parseConfig(defaultConfig)
	if err != nil {
		return nil, err
	}
	configFlags := make(map[ /*flagName*/ string] /*flagValue*/ string)
	if err := collectFlags(configFlags, "" /*path*/, conf); err != nil {
		return nil, fmt.Errorf("invalid default config: %w", err)
	}
	flagSet := make(map[ /*flagName*/ string]struct{}, len(configFlags))
	for flagName := range configFlags {
		flagSet[flagName] = struct{}{}
	}
	return flagSet, nil
}

// CollectUnregisteredFlags collects all flags that haven't been listed in the default config.
// An error exists in the results corresponding to each unregistered flag.
func CollectUnregisteredFlags() []error {
	definedFlags, err := getDefinedFlags()
	if err != nil {
		return []error{err}
	}
	errs := make([]error, 0)
	flag.VisitAll(func(f *flag.Flag) {
		if strings.HasPrefix(f.Name, "test.") { // Skip test flags.
			return
		}
		if slices.Contains(skippedConfigFlags, f.Name) {
			return
		}
		if _, flagHasConfigEntry := definedFlags[f.Name]; !flagHasConfigEntry {
			errs = append(errs, fmt.Errorf("flag '%s' has not been defined in default config", f.Name))
		}
	})
	return errs
}
