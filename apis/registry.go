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

// Registry maps operation names to their definitions.
// Keep it minimal so implementations can be lock-free or sync.Map-backed.
type Registry interface {
	// Define adds op under op.Name(). Re-defining the same instance is a no-op.
	Define(op Operation) error
	// Lookup returns the operation registered under name.
	Lookup(name string) (Operation, bool)
	// LookupID is Lookup plus the id of the definition. Ids are unique per
	// process and never reused, so a name defined again after Reset gets a
	// new id.
	LookupID(name string) (Operation, uint64, bool)
	// Entries returns a snapshot of all operations sorted by name.
	Entries() []Operation
	// Count returns the number of defined operations.
	Count() int
	// Reset drops all definitions.
	Reset()
}
