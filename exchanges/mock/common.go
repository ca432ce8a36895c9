package mock

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/thrasher-corp/coinbasev1/encoding/json"
)

var errUnhandledConversion = errors.New("unhandled conversion type, please add as needed")

// deltaValues are query keys whose values differ between recordings and live
// requests, only their presence is compared
var deltaValues = []string{"access_token"}

// MatchURLVals matches url.Value query strings
func MatchURLVals(v1, v2 url.Values) bool {
	if len(v1) != len(v2) {
		return false
	}

	if len(v1) == 0 && len(v2) == 0 {
		return true
	}

	for key, val := range v1 {
		if isDeltaValue(key) {
			if _, ok := v2[key]; !ok {
				return false
			}
			continue
		}

		if val2, ok := v2[key]; ok {
			if strings.Join(val2, "") == strings.Join(val, "") {
				continue
			}
		}
		return false
	}
	return true
}

func isDeltaValue(key string) bool {
	for i := range deltaValues {
		if deltaValues[i] == key {
			return true
		}
	}
	return false
}

// DeriveURLValsFromJSONMap gets url vals from a map[string]string encoded JSON body
func DeriveURLValsFromJSONMap(payload []byte) (url.Values, error) {
	vals := url.Values{}
	if len(payload) == 0 {
		return vals, nil
	}
	intermediary := make(map[string]any)
	if err := json.Unmarshal(payload, &intermediary); err != nil {
		return vals, err
	}

	for k, v := range intermediary {
		switch val := v.(type) {
		case string:
			vals.Add(k, val)
		case bool:
			vals.Add(k, strconv.FormatBool(val))
		case float64:
			vals.Add(k, strconv.FormatFloat(val, 'f', -1, 64))
		case map[string]any:
			// nested objects are flattened one level deep as parent[child]
			for ck, cv := range val {
				vals.Add(k+"["+ck+"]", fmt.Sprintf("%v", cv))
			}
		case []any, nil:
			vals.Add(k, fmt.Sprintf("%v", val))
		default:
			return vals, fmt.Errorf("%w: %T", errUnhandledConversion, val)
		}
	}

	return vals, nil
}
