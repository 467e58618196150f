/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package apis

import "reflect"

// PlanStrategy is a pluggable pairing step. A Matcher chains strategies in
// order (e.g., Exact -> Assignable) and stops at the first that handles.
type PlanStrategy interface {
	// TryPlan attempts to pair every argument position with a distinct slot.
	// It returns (plan, true, nil) when a unique pairing exists, (nil, false, nil)
	// to fall through, or a non-nil error to stop the chain.
	TryPlan(argTypes []reflect.Type) (plan Plan, handled bool, err error)
}
