//
//  Copyright 2023 PayPal Inc.
//
//  Licensed to the Apache Software Foundation (ASF) under one or more
//  contributor license agreements.  See the NOTICE file distributed with
//  this work for additional information regarding copyright ownership.
//  The ASF licenses this file to You under the Apache License, Version 2.0
//  (the "License"); you may not use this file except in compliance with
//  the License.  You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.
//

/*
Package wire implements the buffer and object view engine used to encode and
decode the multi-version OpenFlow style control protocol.

Objects

An Object is a typed, versioned window into a ByteStore

  +--------------------------------------------------------------------------+
  | ByteStore (growable, len(buf) == bytes in use)                           |
  |    +---------------------------- root object ---------------------------+|
  |    | header | fixed fields | +------ bound child ------+ | trailing ... ||
  |    |        |              | | hdr | +- bound list -+ | |              ||
  |    |        |              | |     | | e0 | e1 | e2 | | |              ||
  |    |        |              | |     | +--------------+ | |              ||
  |    |        |              | +-------------------------+ |              ||
  |    +--------------------------------------------------------------------+|
  +--------------------------------------------------------------------------+

  New     allocates a fresh store sized from the type table and stamps the
          constant discriminator bytes of the type and all its parents
  Init    re-interprets bytes already in a store (decode path)
  Bind    creates a child aliasing a sub-range of the parent's bytes and
          records an ancestor link (parent, optional length field in parent)
  Dup     copies an object's bytes into its own store; no ancestor link

Length propagation

Every variable-length mutation goes through ByteStore.ReplaceRegion. When the
size of the region changes by delta, the object's length, its own length word
(if the type has one) and every ancestor reached through the links are
adjusted by the same delta:

  child --link(lengthField)--> parent --link--> ... --> root
    length += delta             lengthField += delta
    own length word += delta    length += delta, own length word += delta

All affected length words are checked for overflow before any byte moves.

Aliasing

Objects bound from the same store share bytes. A mutation that shifts bytes
invalidates sibling objects that were bound before it and any slice returned
by Bytes or DataAt. Re-bind after mutating. Objects returned by Dup own their
store and can be handed to other goroutines.
*/
package wire
